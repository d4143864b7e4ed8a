package exception

import "slices"

// concat appends the non-nil errors to a copy of result.
func concat(result []error, errors ...error) []error {
	output := slices.Clip(result)
	for _, err := range errors {
		if err != nil {
			output = append(output, err)
		}
	}
	return output
}

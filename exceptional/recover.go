package exceptional

import (
	"fmt"

	"github.com/thanhminhmr/go-exceptional/exception"
	"github.com/thanhminhmr/go-exceptional/taxonomy"
)

var rootNamespace = ""

// Recover turns a value returned by recover into a composed error. Composed
// errors are returned as is, any other value becomes an error of kind Error
// wrapping it. Returns nil for nil.
//
//	defer func() {
//		if err := composer.Recover(recover()); err != nil {
//			...
//		}
//	}()
func (c *Composer) Recover(recovered any) exception.Exception {
	return c.recover(recovered, 1)
}

// Recover is Composer.Recover on the default Composer.
func Recover(recovered any) exception.Exception {
	return Default().recover(recovered, 1)
}

func (c *Composer) recover(recovered any, skip int) exception.Exception {
	parameters := &Parameters{Namespace: &rootNamespace}
	switch value := recovered.(type) {
	case nil:
		return nil
	case exception.Exception:
		return value
	case error:
		parameters.Message = value.Error()
		parameters.Previous = value
	default:
		parameters.Message = fmt.Sprint(value)
		parameters.Data = value
	}
	err, failure := c.compose([]string{string(taxonomy.Error)}, parameters, skip+1)
	if failure != nil {
		panic("BUG: cannot compose a recovered error: " + failure.Error())
	}
	return err
}

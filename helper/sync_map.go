package helper

import "sync"

// SyncMap is a typed sync.Map. Reads do not lock, which suits maps that are
// written once per key and read many times.
type SyncMap[Key comparable, Value any] struct {
	inner sync.Map
}

func (m *SyncMap[Key, Value]) Get(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.Load(key)
	if !exists {
		return value, exists
	}
	return rawValue.(Value), exists
}

// PutIfAbsent stores value unless key is present. It returns the value now
// stored under key and whether it was there before.
func (m *SyncMap[Key, Value]) PutIfAbsent(key Key, value Value) (actual Value, exists bool) {
	actualValue, exists := m.inner.LoadOrStore(key, value)
	if !exists {
		return value, exists
	}
	return actualValue.(Value), exists
}

// ForEach calls f for each entry until f returns false.
func (m *SyncMap[Key, Value]) ForEach(f func(key Key, value Value) bool) {
	m.inner.Range(func(key, value any) bool { return f(key.(Key), value.(Value)) })
}

// Len counts the entries. Entries stored concurrently may or may not be
// counted.
func (m *SyncMap[Key, Value]) Len() int {
	length := 0
	m.inner.Range(func(_, _ any) bool {
		length++
		return true
	})
	return length
}

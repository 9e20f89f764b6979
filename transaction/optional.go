package transaction

import "fmt"

// Optional holds a value that a source may not be able to supply.
// The zero value is unknown, which is distinct from any real value
// including the empty string.
type Optional[T any] struct {
	value T
	known bool
}

// Known wraps a value the source supplied.
func Known[T any](v T) Optional[T] {
	return Optional[T]{value: v, known: true}
}

// Unknown returns the absent value for T.
func Unknown[T any]() Optional[T] {
	return Optional[T]{}
}

// KnownIfSet treats an empty source column as unknown.
func KnownIfSet(s string) Optional[string] {
	if s == "" {
		return Unknown[string]()
	}
	return Known(s)
}

func (o Optional[T]) IsKnown() bool {
	return o.known
}

// Get returns the value and whether it is known.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.known
}

// OrElse returns the value, or def when unknown.
func (o Optional[T]) OrElse(def T) T {
	if !o.known {
		return def
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.known {
		return "<unknown>"
	}
	return fmt.Sprint(o.value)
}

package helper

import (
	"errors"
	"fmt"
)

var ErrUnexpectedType = errors.New("unexpected type")

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if the getter fails or the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrUnexpectedType, zero, res)
	}

	return val, nil
}

// OptionalTypedValueOf is GetTypedValueOf for values that may be absent.
// A nil value yields the zero T and present == false without an error.
func OptionalTypedValueOf[T any](raw any) (val T, present bool, err error) {
	if raw == nil {
		return val, false, nil
	}
	val, err = GetTypedValueOf[T](func() (any, error) { return raw, nil })
	return val, err == nil, err
}

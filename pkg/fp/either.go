package fp

import (
	"github.com/IBM/fp-go/either"
)

// Result is either an error or a value of type T.
type Result[T any] = either.Either[error, T]

// Success creates a successful Result containing the given value.
func Success[T any](value T) Result[T] {
	return either.Right[error](value)
}

// Failure creates a failed Result containing the given error.
func Failure[T any](err error) Result[T] {
	return either.Left[T](err)
}

// IsFailure checks if the Result is a failure.
func IsFailure[T any](result Result[T]) bool {
	return either.IsLeft(result)
}

// GetError extracts the error from a failure, or returns nil on success.
func GetError[T any](result Result[T]) error {
	return either.Fold(
		func(err error) error { return err },
		func(_ T) error { return nil },
	)(result)
}

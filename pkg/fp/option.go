// Package fp wraps IBM/fp-go with the small set of Option, Result and
// validation helpers the shell uses.
package fp

import (
	"github.com/IBM/fp-go/option"
)

// Option represents an optional value (Some or None).
type Option[T any] = option.Option[T]

// Some wraps a value in an Option.
func Some[T any](value T) Option[T] {
	return option.Some(value)
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return option.None[T]()
}

// FromPointer converts a pointer to an Option. A nil pointer is None.
func FromPointer[T any](ptr *T) Option[T] {
	if ptr == nil {
		return option.None[T]()
	}
	return option.Some(*ptr)
}

// FromNonZero returns None for the zero value of T and Some otherwise.
func FromNonZero[T comparable](value T) Option[T] {
	var zero T
	if value == zero {
		return option.None[T]()
	}
	return option.Some(value)
}

// IsSome checks if an Option contains a value.
func IsSome[T any](opt Option[T]) bool {
	return option.IsSome(opt)
}

// IsNone checks if an Option is empty.
func IsNone[T any](opt Option[T]) bool {
	return option.IsNone(opt)
}

// GetOrElseOpt returns the value if Some, or defaultValue if None.
func GetOrElseOpt[T any](defaultValue T) func(Option[T]) T {
	return option.GetOrElse(func() T { return defaultValue })
}

// FoldOpt applies one of two functions based on the Option.
func FoldOpt[T, U any](onNone func() U, onSome func(T) U) func(Option[T]) U {
	return option.Fold(onNone, onSome)
}

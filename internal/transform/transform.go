/*
Package transform provides stateless transforms over decoded pixel
buffers. Every function allocates and returns a new buffer; inputs are
never mutated, so the caller can keep the decoded original and reapply
transforms with different parameters.
*/
package transform

import "errors"

var (
	// ErrNegativeFactor rejects brightness factors below zero.
	ErrNegativeFactor = errors.New("transform: brightness factor must not be negative")

	// ErrNonPositiveScale rejects scale factors at or below zero.
	ErrNonPositiveScale = errors.New("transform: scale factor must be positive")
)

package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrAlreadyGenerated  = errors.New("maze has already been generated on this grid")
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// ValidationError reports a generated grid that breaks one of the perfect
// maze properties checked by [Verify].
type ValidationError struct {
	Property string
	Detail   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("maze validation failed (%s): %s", e.Property, e.Detail)
}

package deinvert

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error caused by invalid options. Such
// errors are returned before any sample is processed.
var ErrInvalidConfig = errors.New("invalid configuration")

func configErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

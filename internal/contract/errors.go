package contract

import (
	"errors"
	"fmt"
)

// ErrNoScanData is returned when neither a cached scan nor an import file is available.
var ErrNoScanData = errors.New("no scan data available. Run 'gitwrapped scan' first or pass --input with an export file")

// ErrNoData is returned when the requested author has no matching commits.
var ErrNoData = errors.New("no commits found for author")

// InvalidMappingError reports an author mapping that failed shape validation.
type InvalidMappingError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidMappingError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid author mapping: %s", e.Reason)
	}
	return fmt.Sprintf("invalid author mapping for %q: %s", e.Name, e.Reason)
}

// NewInvalidMappingError builds an InvalidMappingError.
func NewInvalidMappingError(name, reason string) *InvalidMappingError {
	return &InvalidMappingError{Name: name, Reason: reason}
}

package siteconfig

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidConfig is the single error kind for a record that fails
	// validation. Use errors.Is(err, ErrInvalidConfig).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownField classifies strict decode failures caused by unknown keys.
	ErrUnknownField = errors.New("unknown config field")

	// ErrUnsupportedFormat is returned for file extensions or format names
	// that have no codec.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Problem describes one invalid field.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return p.Field + ": " + p.Message
}

// ValidationError lists every problem found in a record.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return ErrInvalidConfig.Error() + ": " + strings.Join(parts, "; ")
}

// Is reports ErrInvalidConfig as the error kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ValidationError) add(field, msg string) {
	e.Problems = append(e.Problems, Problem{Field: field, Message: msg})
}

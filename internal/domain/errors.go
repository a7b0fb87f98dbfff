package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every unknown-reference error.
var ErrNotFound = errors.New("not found")

var (
	ErrProjectNotFound  = fmt.Errorf("project %w", ErrNotFound)
	ErrGroupNotFound    = fmt.Errorf("group %w", ErrNotFound)
	ErrPlanningNotFound = fmt.Errorf("planning %w", ErrNotFound)
)

var (
	// ErrFormat reports import data matching neither the application nor the legacy shape.
	ErrFormat         = errors.New("unrecognized JSON format")
	ErrLastGroup      = errors.New("cannot delete the last remaining group")
	ErrInvalidConfig  = errors.New("invalid timeline config")
	ErrInvalidProject = errors.New("invalid project")
	ErrNameRequired   = errors.New("name is required")
)

package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidCourierID      = errors.New("invalid courier id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidPhone          = errors.New("invalid phone")
	ErrInvalidLocation       = errors.New("invalid location")

	ErrCourierNotFound = fmt.Errorf("courier %w", entities.ErrNotFound)
	ErrConflict        = errors.New("resource already exists")
)

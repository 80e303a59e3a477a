package order

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidCourierID = errors.New("invalid courier id")
	ErrUndefinedAction  = fmt.Errorf("undefined courier action: %w", entities.ErrInvalidTransition)
)

package earnings

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidCourierID = errors.New("invalid courier id")
	ErrInvalidOrderID   = errors.New("invalid order id")

	ErrCourierNotFound     = fmt.Errorf("courier %w", entities.ErrNotFound)
	ErrInsufficientBalance = fmt.Errorf("payout exceeds balance: %w", entities.ErrInsufficientBalance)
)

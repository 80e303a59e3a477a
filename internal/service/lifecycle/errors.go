package lifecycle

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidCourierID = errors.New("invalid courier id")
	ErrInvalidTotal     = errors.New("invalid order total")

	ErrOrderNotFound        = fmt.Errorf("order %w", entities.ErrNotFound)
	ErrOrderFinished        = fmt.Errorf("order is finished: %w", entities.ErrInvalidTransition)
	ErrTransitionNotAllowed = fmt.Errorf("transition not allowed: %w", entities.ErrInvalidTransition)
	ErrWrongCourier         = fmt.Errorf("order is assigned to another courier: %w", entities.ErrInvalidTransition)
	ErrPhotoRequired        = fmt.Errorf("delivery photo reference: %w", entities.ErrProofRequired)
	ErrPhotoNotFound        = fmt.Errorf("delivery photo is not in storage: %w", entities.ErrProofRequired)
	ErrOrderChanged         = fmt.Errorf("order %w", entities.ErrConcurrentModification)
)

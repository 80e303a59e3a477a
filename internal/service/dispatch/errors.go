package dispatch

import (
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidCourierID = errors.New("invalid courier id")

	// ErrNoCandidates в пуле нет ни одного подходящего курьера.
	ErrNoCandidates = fmt.Errorf("empty candidate pool: %w", entities.ErrNoCourierAvailable)
	// ErrAllClaimsFailed кандидаты были, но ни одного закрепить не удалось.
	ErrAllClaimsFailed = fmt.Errorf("every claim failed: %w", entities.ErrNoCourierAvailable)

	ErrOrderAlreadyAssigned = fmt.Errorf("order already assigned: %w", entities.ErrConcurrentModification)
	ErrOrderChanged         = fmt.Errorf("order changed during release: %w", entities.ErrConcurrentModification)
	ErrNotAssignedCourier   = fmt.Errorf("order is not assigned to this courier: %w", entities.ErrInvalidTransition)
)

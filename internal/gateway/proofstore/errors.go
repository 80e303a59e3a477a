package proofstore

import (
	"fmt"

	"dispatch/internal/entities"
)

var ErrInvalidRef = fmt.Errorf("invalid photo reference: %w", entities.ErrProofRequired)

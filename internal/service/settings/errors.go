package settings

import (
	"fmt"

	"dispatch/internal/entities"
)

var (
	ErrSettingsNotFound = fmt.Errorf("dispatch settings %w", entities.ErrNotFound)
	ErrEmptyUpdate      = fmt.Errorf("nothing to update: %w", entities.ErrConfigInvalid)
)

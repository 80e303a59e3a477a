package entities

import "errors"

// Базовые категории ошибок ядра. Ошибки сервисов оборачивают их,
// поэтому вызывающая сторона может проверять и конкретную ошибку, и категорию.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrProofRequired          = errors.New("proof of delivery required")
	ErrNoCourierAvailable     = errors.New("no courier available")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrConfigInvalid          = errors.New("invalid config")
)

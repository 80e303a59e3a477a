package kafka

import (
	"time"

	retrierconfig "dispatch/pkg/retrier"
)

// ProcessingRetry параметры повторов обработки одного сообщения.
// Пока повторы идут, партиция стоит. Когда время вышло, хендлер выходит
// из ConsumeClaim без коммита, и сообщение читается заново после ребаланса.
func ProcessingRetry() retrierconfig.Config {
	return retrierconfig.Config{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  30 * time.Second,
		Randomization:   randomization,
		Multiplier:      multiplier,
	}
}

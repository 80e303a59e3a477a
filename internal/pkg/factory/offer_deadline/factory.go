package offer_deadline

import (
	"time"
)

const DefaultWindow = 2 * time.Minute

// OfferDeadlineFactory считает, до какого момента курьер должен ответить
// на предложенный заказ.
type OfferDeadlineFactory struct {
	window time.Duration
}

func New(window time.Duration) *OfferDeadlineFactory {
	if window <= 0 {
		window = DefaultWindow
	}
	return &OfferDeadlineFactory{
		window: window,
	}
}

func (f *OfferDeadlineFactory) CalculateDeadline(assignedAt time.Time) time.Time {
	return assignedAt.Add(f.window)
}

func (f *OfferDeadlineFactory) Window() time.Duration {
	return f.window
}

package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/turnate/booking-engine/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// SlotsObserver учет количества отданных слотов
type SlotsObserver interface {
	ObserveSlots(count int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_booking

import (
	"context"

	createBooking "github.com/turnate/booking-engine/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// BookingObserver учет исходов бронирования
type BookingObserver interface {
	ObserveBooking(outcome string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

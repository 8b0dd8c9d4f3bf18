package domain

import "time"

// AppointmentStatus represents the status of an appointment (turno)
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a committed reservation that blocks [Start, End)
type Appointment struct {
	ID          int64
	ServiceID   int64
	Start       time.Time
	End         time.Time
	Status      AppointmentStatus
	ClientName  string
	ClientPhone string
	ClientEmail string
	CreatedAt   time.Time
}

// IsActive returns true if the appointment still occupies its interval
func (a *Appointment) IsActive() bool {
	for _, s := range InactiveStatuses {
		if a.Status == s {
			return false
		}
	}
	return true
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Interval returns the occupied interval
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.Start, End: a.End}
}

// BookingRequest is what the booking submission sends to the create endpoint
type BookingRequest struct {
	BusinessCode string
	ServiceID    int64
	Start        time.Time
	End          time.Time
	ClientName   string
	ClientPhone  string
	ClientEmail  string
}

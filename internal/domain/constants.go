package domain

// Default values
const (
	DefaultStepMinutes                = 30
	DefaultAppointmentDurationMinutes = 60
	DefaultClientName                 = "Cliente"
	DefaultTimeZone                   = "America/Argentina/Buenos_Aires"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 720 // 12 hours
	MaxClientNameLength       = 120
	MaxClientPhoneLength      = 32
	MaxClientEmailLength      = 254
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают время в расписании
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

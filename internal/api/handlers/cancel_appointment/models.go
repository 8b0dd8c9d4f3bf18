package cancel_appointment

// CancelAppointmentRequest HTTP request model
// Contact телефон или email, указанные при бронировании
type CancelAppointmentRequest struct {
	Contact string `json:"contact"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID      int64  `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

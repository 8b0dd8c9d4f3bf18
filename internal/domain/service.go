package domain

// Service is an offering of the business; its duration defines the slot length
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
}

// FindService returns the service with the given ID
func FindService(services []Service, id int64) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

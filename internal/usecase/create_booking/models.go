package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	BusinessCode string    // Публичный код бизнеса
	ServiceID    int64     // ID услуги
	Start        time.Time // Начало слота
	End          time.Time // Конец слота (Start + длительность услуги)
	ClientName   string    // Пустое имя заменяется на "Cliente"
	ClientPhone  string    // Опционально
	ClientEmail  string    // Опционально
}

// Settings ограничения из конфигурации
type Settings struct {
	DefaultLocation    *time.Location
	AdvanceBookingDays int // 0 = без ограничения
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	ServiceName     string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Status          string
	ClientName      string

	// Оставшиеся свободные слоты дня бронирования
	Date           time.Time
	RemainingSlots []Slot
	Refreshed      bool // false, если не удалось перечитать бронирования после создания
}

// Slot модель временного слота
type Slot struct {
	Start time.Time
	End   time.Time
}

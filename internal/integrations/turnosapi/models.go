package turnosapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexInt число, которое бэкенд иногда присылает строкой
type flexInt struct {
	value int64
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = flexInt{}
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*f = flexInt{}
			return nil
		}
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	if n != math.Trunc(n) || math.IsInf(n, 0) {
		return fmt.Errorf("not an integer: %s", string(data))
	}
	*f = flexInt{value: int64(n), set: true}
	return nil
}

// flexFloat число, которое бэкенд иногда присылает строкой (цены "1500.00")
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(data))
	}
	*f = flexFloat(n)
	return nil
}

// businessDTO запись emprendedor
type businessDTO struct {
	ID       flexInt `json:"id"`
	Code     string  `json:"codigo"`
	Name     string  `json:"nombre"`
	TimeZone string  `json:"zona_horaria"`
}

// serviceDTO запись servicio
type serviceDTO struct {
	ID              flexInt   `json:"id"`
	Name            string    `json:"nombre"`
	Duration        flexInt   `json:"duracion"`
	DurationMinutes flexInt   `json:"duracion_minutos"`
	Price           flexFloat `json:"precio"`
}

// scheduleDTO запись horario
type scheduleDTO struct {
	Weekday  flexInt `json:"dia_semana"`
	From     string  `json:"desde"`
	Start    string  `json:"inicio"`
	To       string  `json:"hasta"`
	End      string  `json:"fin"`
	Interval flexInt `json:"intervalo"`
}

// appointmentDTO запись turno
type appointmentDTO struct {
	ID        flexInt `json:"id"`
	ServiceID flexInt `json:"servicio_id"`
	Start     string  `json:"inicio"`
	From      string  `json:"desde"`
	DateTime  string  `json:"datetime"`
	End       string  `json:"fin"`
	To        string  `json:"hasta"`
	Duration  flexInt `json:"duracion"`
	Status    string  `json:"estado"`

	ClientName  string `json:"cliente_nombre"`
	ClientPhone string `json:"cliente_telefono"`
	ClientEmail string `json:"cliente_email"`
}

// createAppointmentRequest тело POST /turnos
type createAppointmentRequest struct {
	ServiceID   int64  `json:"servicio_id"`
	Start       string `json:"inicio"`
	End         string `json:"fin"`
	ClientName  string `json:"cliente_nombre"`
	ClientPhone string `json:"cliente_telefono,omitempty"`
	ClientEmail string `json:"cliente_email,omitempty"`
}

// ErrorResponse модель ошибки от бэкенда
type ErrorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// Text возвращает человекочитаемое описание ошибки
// detail бывает строкой или списком ошибок валидации.
func (e ErrorResponse) Text() string {
	if len(e.Detail) > 0 {
		var s string
		if err := json.Unmarshal(e.Detail, &s); err == nil {
			return s
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(e.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	return e.Message
}

package turnosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/pkg/authctx"
)

// maxErrorBody сколько байт тела ошибки попадает в текст ошибки
const maxErrorBody = 512

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего бэкенда Turnate
// Реализует тот же набор операций, что и встроенный PostgreSQL источник.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusiness получает emprendedor по публичному коду
func (c *Client) GetBusiness(ctx context.Context, code string) (*domain.Business, error) {
	var dto businessDTO
	if err := c.do(ctx, http.MethodGet, c.businessPath(code, ""), nil, nil, &dto); err != nil {
		return nil, err
	}
	return normalizeBusiness(dto, code)
}

// ListServices получает услуги бизнеса
func (c *Client) ListServices(ctx context.Context, code string) ([]domain.Service, error) {
	var dtos []serviceDTO
	if err := c.do(ctx, http.MethodGet, c.businessPath(code, "/servicios"), nil, nil, &dtos); err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(dtos))
	for _, dto := range dtos {
		service, err := normalizeService(dto)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, nil
}

// ListSchedule получает недельное расписание бизнеса
func (c *Client) ListSchedule(ctx context.Context, code string) (domain.WeeklySchedule, error) {
	var dtos []scheduleDTO
	if err := c.do(ctx, http.MethodGet, c.businessPath(code, "/horarios"), nil, nil, &dtos); err != nil {
		return nil, err
	}

	blocks := make([]domain.WeeklyScheduleBlock, 0, len(dtos))
	for _, dto := range dtos {
		block, err := normalizeScheduleBlock(dto)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return domain.NewWeeklySchedule(blocks), nil
}

// ListAppointments получает бронирования бизнеса за период [from, to)
func (c *Client) ListAppointments(ctx context.Context, code string, from, to time.Time) ([]domain.Appointment, error) {
	query := url.Values{}
	query.Set("desde", formatTimestamp(from))
	query.Set("hasta", formatTimestamp(to))

	var dtos []appointmentDTO
	if err := c.do(ctx, http.MethodGet, c.businessPath(code, "/turnos"), query, nil, &dtos); err != nil {
		return nil, err
	}

	appointments := make([]domain.Appointment, 0, len(dtos))
	for _, dto := range dtos {
		appointment, err := normalizeAppointment(dto)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}

// CreateAppointment отправляет бронирование на бэкенд
// 409 возвращается как domain.ErrConflict, 401/403 как domain.ErrAuthExpired,
// 400/422 как *domain.ValidationError с текстом бэкенда.
func (c *Client) CreateAppointment(ctx context.Context, req domain.BookingRequest) (*domain.Appointment, error) {
	body := createAppointmentRequest{
		ServiceID:   req.ServiceID,
		Start:       formatTimestamp(req.Start),
		End:         formatTimestamp(req.End),
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
	}

	var dto appointmentDTO
	if err := c.do(ctx, http.MethodPost, c.businessPath(req.BusinessCode, "/turnos"), nil, body, &dto); err != nil {
		return nil, err
	}

	appointment, err := normalizeAppointment(dto)
	if err != nil {
		// Бэкенд может вернуть запись без времени; интервал известен из запроса
		c.log.Warn("CreateAppointment: incomplete record returned for business=%s: %v", req.BusinessCode, err)
		appointment = domain.Appointment{ID: dto.ID.value, Status: domain.StatusConfirmed}
		appointment.Start, appointment.End = req.Start, req.End
	}
	if appointment.ServiceID == 0 {
		appointment.ServiceID = req.ServiceID
	}
	if appointment.ClientName == "" {
		appointment.ClientName = req.ClientName
	}

	c.log.Info("CreateAppointment: backend created turno id=%d for business=%s", appointment.ID, req.BusinessCode)
	return &appointment, nil
}

func (c *Client) businessPath(code, suffix string) string {
	return fmt.Sprintf("%s/emprendedores/%s%s", c.baseURL, url.PathEscape(code), suffix)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, in, out interface{}) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := authctx.Token(ctx); ok {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request %s %s: %v", ErrInternal, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusNotFound:
		return domain.ErrBusinessNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthExpired
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &domain.ValidationError{Detail: readErrorDetail(resp.Body)}
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var resp ErrorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return resp.Text()
}

package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeProvider struct {
	business     *domain.Business
	services     []domain.Service
	schedule     domain.WeeklySchedule
	appointments []domain.Appointment
	listErr      error

	listedFrom, listedTo time.Time
}

func (f *fakeProvider) GetBusiness(_ context.Context, code string) (*domain.Business, error) {
	if f.business == nil || f.business.Code != code {
		return nil, domain.ErrBusinessNotFound
	}
	return f.business, nil
}

func (f *fakeProvider) ListServices(context.Context, string) ([]domain.Service, error) {
	return f.services, nil
}

func (f *fakeProvider) ListSchedule(context.Context, string) (domain.WeeklySchedule, error) {
	return f.schedule, nil
}

func (f *fakeProvider) ListAppointments(_ context.Context, _ string, from, to time.Time) ([]domain.Appointment, error) {
	f.listedFrom, f.listedTo = from, to
	return f.appointments, f.listErr
}

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	return loc
}

func newTestUseCase(t *testing.T, provider *fakeProvider, now time.Time, settings Settings) *UseCase {
	t.Helper()
	uc := NewUseCase(provider, settings, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func mondayProvider(loc *time.Location) *fakeProvider {
	return &fakeProvider{
		business: &domain.Business{ID: 1, Code: "peluqueria-ana", Location: loc},
		services: []domain.Service{{ID: 7, Name: "Corte", DurationMinutes: 30}},
		schedule: domain.NewWeeklySchedule([]domain.WeeklyScheduleBlock{
			{Weekday: time.Monday, Start: "09:00", End: "12:00", StepMinutes: 30},
		}),
	}
}

func starts(slots []Slot) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.Start.Format("15:04")
	}
	return result
}

func TestExecute_SingleDay(t *testing.T) {
	loc := mustLocation(t)
	provider := mondayProvider(loc)
	provider.appointments = []domain.Appointment{
		{ID: 1, Status: domain.StatusConfirmed,
			Start: time.Date(2025, 6, 2, 10, 0, 0, 0, loc), End: time.Date(2025, 6, 2, 10, 30, 0, 0, loc)},
		{ID: 2, Status: domain.StatusCancelled,
			Start: time.Date(2025, 6, 2, 11, 0, 0, 0, loc), End: time.Date(2025, 6, 2, 11, 30, 0, 0, loc)},
	}
	now := time.Date(2025, 6, 2, 9, 15, 0, 0, loc)
	uc := newTestUseCase(t, provider, now, Settings{DefaultLocation: time.UTC, MaxRangeDays: 31})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessCode: "peluqueria-ana",
		ServiceID:    7,
		From:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, []string{"09:30", "10:30", "11:00", "11:30"}, starts(resp.Days[0].Slots))
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), provider.listedFrom)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), provider.listedTo)
}

func TestExecute_Range(t *testing.T) {
	loc := mustLocation(t)
	provider := mondayProvider(loc)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, loc)
	uc := newTestUseCase(t, provider, now, Settings{MaxRangeDays: 31})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessCode: "peluqueria-ana",
		ServiceID:    7,
		From:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 9)
	assert.Empty(t, resp.Days[0].Slots, "sunday is closed")
	assert.Len(t, resp.Days[1].Slots, 6)
	assert.Len(t, resp.Days[8].Slots, 6)
	assert.Equal(t, 12, resp.TotalSlots())
}

func TestExecute_BusinessWithoutTimeZoneUsesDefault(t *testing.T) {
	loc := mustLocation(t)
	provider := mondayProvider(nil)
	uc := newTestUseCase(t, provider, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), Settings{DefaultLocation: loc})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessCode: "peluqueria-ana",
		ServiceID:    7,
		From:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, loc, resp.Location)
	assert.Equal(t, time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC), resp.Days[0].Slots[0].Start.UTC())
}

func TestExecute_Errors(t *testing.T) {
	loc := mustLocation(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		req      Request
		settings Settings
		mutate   func(p *fakeProvider)
		want     error
	}{
		{name: "bad code", req: Request{BusinessCode: "X", ServiceID: 7, From: day}, want: ErrInvalidInput},
		{name: "no service id", req: Request{BusinessCode: "peluqueria-ana", From: day}, want: ErrInvalidInput},
		{name: "no date", req: Request{BusinessCode: "peluqueria-ana", ServiceID: 7}, want: ErrInvalidInput},
		{name: "reversed range", req: Request{BusinessCode: "peluqueria-ana", ServiceID: 7, From: day, To: day.AddDate(0, 0, -1)}, want: ErrInvalidInput},
		{name: "unknown business", req: Request{BusinessCode: "otro-negocio", ServiceID: 7, From: day}, want: ErrBusinessNotFound},
		{name: "unknown service", req: Request{BusinessCode: "peluqueria-ana", ServiceID: 8, From: day}, want: ErrServiceNotFound},
		{
			name:   "zero duration",
			req:    Request{BusinessCode: "peluqueria-ana", ServiceID: 7, From: day},
			mutate: func(p *fakeProvider) { p.services[0].DurationMinutes = 0 },
			want:   ErrInvalidServiceDuration,
		},
		{
			name:     "range too long",
			req:      Request{BusinessCode: "peluqueria-ana", ServiceID: 7, From: day, To: day.AddDate(0, 0, 7)},
			settings: Settings{MaxRangeDays: 7},
			want:     ErrRangeTooLong,
		},
		{
			name:     "too far ahead",
			req:      Request{BusinessCode: "peluqueria-ana", ServiceID: 7, From: day.AddDate(0, 0, 30)},
			settings: Settings{AdvanceBookingDays: 14},
			want:     ErrDateTooFarInFuture,
		},
		{
			name:   "session expired",
			req:    Request{BusinessCode: "peluqueria-ana", ServiceID: 7, From: day},
			mutate: func(p *fakeProvider) { p.listErr = domain.ErrAuthExpired },
			want:   ErrSessionExpired,
		},
		{
			name:   "backend down",
			req:    Request{BusinessCode: "peluqueria-ana", ServiceID: 7, From: day},
			mutate: func(p *fakeProvider) { p.listErr = errors.New("connection refused") },
			want:   ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mondayProvider(loc)
			if tt.mutate != nil {
				tt.mutate(provider)
			}
			uc := newTestUseCase(t, provider, now, tt.settings)

			_, err := uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_RangeSpanningAdvanceLimit(t *testing.T) {
	loc := mustLocation(t)
	provider := mondayProvider(loc)
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, loc)
	uc := newTestUseCase(t, provider, now, Settings{MaxRangeDays: 31, AdvanceBookingDays: 7})

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessCode: "peluqueria-ana",
		ServiceID:    7,
		From:         time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		To:           time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 28)

	limit := time.Date(2025, 6, 9, 0, 0, 0, 0, loc)
	for _, day := range resp.Days {
		if day.Date.Equal(limit) {
			assert.Len(t, day.Slots, 6, "last bookable day keeps its slots")
		}
		if day.Date.After(limit) {
			assert.Empty(t, day.Slots, "day %s is beyond the advance limit", day.Date.Format(domain.DateFormat))
		}
	}
	assert.Equal(t, 6, resp.TotalSlots())
}

package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/pkg/dbmetrics"
	"github.com/turnate/booking-engine/pkg/psqlbuilder"
	"github.com/turnate/booking-engine/pkg/txmanager"
)

// pgExclusionViolation код ошибки PostgreSQL exclusion_violation
const pgExclusionViolation = "23P01"

var appointmentColumns = []string{
	"id",
	"service_id",
	"starts_at",
	"ends_at",
	"status",
	"client_name",
	"client_phone",
	"client_email",
	"created_at",
}

// Repository репозиторий для работы с бронированиями (turnos)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с активным бронированием (ограничение в БД) возвращает ErrOverlap.
func (r *Repository) Create(ctx context.Context, businessID int64, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"service_id",
			"starts_at",
			"ends_at",
			"status",
			"client_name",
			"client_phone",
			"client_email",
		).
		Values(
			businessID,
			appointment.ServiceID,
			appointment.Start.UTC(),
			appointment.End.UTC(),
			appointment.Status,
			appointment.ClientName,
			nullString(appointment.ClientPhone),
			nullString(appointment.ClientEmail),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appointment.ID, &createdAt)
	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time

	return appointment, nil
}

// GetByID получает бронирование бизнеса по ID
func (r *Repository) GetByID(ctx context.Context, businessID, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// ListInRange получает активные бронирования бизнеса, пересекающиеся с [from, to)
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка
// пересечений при создании бронирования не гонялась с параллельными запросами.
func (r *Repository) ListInRange(ctx context.Context, businessID int64, from, to time.Time) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listInRangeQuery(businessID, from, to, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if mapped := mapPgError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: ListInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListInRange - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInRange - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Cancel отменяет бронирование, освобождая его интервал
func (r *Repository) Cancel(ctx context.Context, businessID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func listInRangeQuery(businessID int64, from, to time.Time, forUpdate bool) squirrel.SelectBuilder {
	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Lt{"starts_at": to.UTC()}).
		Where(squirrel.Gt{"ends_at": from.UTC()}).
		Where(squirrel.NotEq{"status": inactive}).
		OrderBy("starts_at ASC")

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a            domain.Appointment
		phone, email sql.NullString
		createdAt    sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ServiceID,
		&a.Start,
		&a.End,
		&a.Status,
		&a.ClientName,
		&phone,
		&email,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.ClientPhone = phone.String
	a.ClientEmail = email.String
	a.CreatedAt = createdAt.Time

	return &a, nil
}

func mapPgError(err error) error {
	if txmanager.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
		return fmt.Errorf("%w: %v", ErrOverlap, err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

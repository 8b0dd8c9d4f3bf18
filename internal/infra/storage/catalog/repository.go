package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/turnate/booking-engine/internal/domain"
	"github.com/turnate/booking-engine/pkg/dbmetrics"
	"github.com/turnate/booking-engine/pkg/psqlbuilder"
)

// Repository репозиторий бизнесов, их услуг и недельного расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusinessByCode получает бизнес по публичному коду
func (r *Repository) GetBusinessByCode(ctx context.Context, code string) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := businessByCodeQuery(code).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByCode - build select query: %v", ErrBuildQuery, err)
	}

	var (
		business domain.Business
		timeZone string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Code,
		&business.Name,
		&timeZone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByCode - scan business: %v", ErrScanRow, err)
	}

	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimeZone, timeZone, err)
	}
	business.Location = loc

	return &business, nil
}

// ListServices получает активные услуги бизнеса, упорядоченные по названию
func (r *Repository) ListServices(ctx context.Context, businessID int64) ([]domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := servicesQuery(businessID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.Price); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// ListScheduleBlocks получает блоки недельного расписания бизнеса
// Порядок: день недели, затем время начала
func (r *Repository) ListScheduleBlocks(ctx context.Context, businessID int64) ([]domain.WeeklyScheduleBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := scheduleBlocksQuery(businessID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduleBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduleBlocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.WeeklyScheduleBlock, 0)
	for rows.Next() {
		var (
			block   domain.WeeklyScheduleBlock
			weekday int
		)
		if err := rows.Scan(&weekday, &block.Start, &block.End, &block.StepMinutes); err != nil {
			return nil, fmt.Errorf("%w: ListScheduleBlocks - scan row: %v", ErrScanRow, err)
		}
		block.Weekday = time.Weekday(weekday)
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListScheduleBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

func businessByCodeQuery(code string) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "code", "name", "time_zone").
		From("businesses").
		Where(squirrel.Eq{"code": code})
}

func servicesQuery(businessID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "duration_minutes", "price").
		From("services").
		Where(squirrel.Eq{"business_id": businessID, "active": true}).
		OrderBy("name ASC", "id ASC")
}

func scheduleBlocksQuery(businessID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("day_of_week", "start_time", "end_time", "step_minutes").
		From("schedule_blocks").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC", "start_time ASC")
}

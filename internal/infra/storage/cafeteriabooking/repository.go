package cafeteriabooking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/pgerr"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const table = "cafeteria_bookings"

var columns = []string{
	"id",
	"floor_number",
	"date",
	"start_time",
	"end_time",
	"token",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований столовой
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, booking *domain.CafeteriaBooking) (*domain.CafeteriaBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("floor_number", "date", "start_time", "end_time", "token").
		Values(booking.FloorNumber, booking.Date, booking.StartTime, booking.EndTime, booking.Token).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: Create - insert: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CafeteriaBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.CafeteriaBooking, error) {
	return r.list(ctx, "List", psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time DESC", "id DESC"))
}

// ListByFloorAndDate брони столовой этажа на день (FOR UPDATE внутри транзакции)
func (r *Repository) ListByFloorAndDate(ctx context.Context, floorNumber int, date time.Time) ([]*domain.CafeteriaBooking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"floor_number": floorNumber, "date": date}).
		OrderBy("start_time")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListByFloorAndDate", builder)
}

// CountByDate число броней столовой на день по всем этажам
func (r *Repository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.CafeteriaBooking, error) {
	return r.list(ctx, "ListUpcomingByToken", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("start_time"))
}

func (r *Repository) ListByOwner(ctx context.Context, token string) ([]*domain.CafeteriaBooking, error) {
	return r.list(ctx, "ListByOwner", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"token": token}).
		OrderBy("id"))
}

func (r *Repository) Update(ctx context.Context, booking *domain.CafeteriaBooking) (*domain.CafeteriaBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("floor_number", booking.FloorNumber).
		Set("date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: Update - update: %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return booking, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return fmt.Errorf("%w: Delete - delete: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.CafeteriaBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		// FOR UPDATE в SERIALIZABLE может проиграть конкурентной транзакции
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %s - query: %v", ErrConflict, op, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.CafeteriaBooking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.CafeteriaBooking, error) {
	var (
		b                    domain.CafeteriaBooking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(&b.ID, &b.FloorNumber, &b.Date, &b.StartTime, &b.EndTime, &b.Token, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	b.Date = domain.NormalizeDate(b.Date)
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

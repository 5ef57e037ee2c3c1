package seatbooking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/pgerr"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const table = "seat_bookings"

var columns = []string{
	"id",
	"floor_number",
	"date",
	"seat_no",
	"status",
	"users",
	"token",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований мест
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Если в контексте есть транзакция, выполняется в ней.
func (r *Repository) Create(ctx context.Context, booking *domain.SeatBooking) (*domain.SeatBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("floor_number", "date", "seat_no", "status", "users", "token").
		Values(
			booking.FloorNumber,
			booking.Date,
			pq.Array(booking.SeatNo),
			booking.Status,
			pq.Array(nonNil(booking.Users)),
			booking.Token,
		).
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

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SeatBooking, error) {
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

// List возвращает все бронирования мест
func (r *Repository) List(ctx context.Context) ([]*domain.SeatBooking, error) {
	return r.list(ctx, "List", psqlbuilder.Select(columns...).
		From(table).
		OrderBy("date DESC", "id DESC"))
}

// ListByFloorAndDate возвращает бронирования этажа на дату.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListByFloorAndDate(ctx context.Context, floorNumber int, date time.Time) ([]*domain.SeatBooking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"floor_number": floorNumber, "date": date}).
		OrderBy("id")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListByFloorAndDate", builder)
}

// ListByDate возвращает все бронирования мест на дату
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.SeatBooking, error) {
	return r.list(ctx, "ListByDate", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date}).
		OrderBy("id"))
}

// ListUpcomingByToken возвращает бронирования начиная с даты from,
// где token - владелец или участник
func (r *Repository) ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.SeatBooking, error) {
	return r.list(ctx, "ListUpcomingByToken", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Or{
			squirrel.Eq{"token": token},
			squirrel.Expr("? = ANY(users)", token),
		}).
		OrderBy("date", "id"))
}

// ListByOwner возвращает все бронирования, созданные владельцем token
func (r *Repository) ListByOwner(ctx context.Context, token string) ([]*domain.SeatBooking, error) {
	return r.list(ctx, "ListByOwner", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"token": token}).
		OrderBy("id"))
}

// Delete удаляет бронирование
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

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.SeatBooking, error) {
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

	bookings := make([]*domain.SeatBooking, 0)
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

func scanBooking(row scanner) (*domain.SeatBooking, error) {
	var (
		b                    domain.SeatBooking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.FloorNumber,
		&b.Date,
		pq.Array(&b.SeatNo),
		&b.Status,
		pq.Array(&b.Users),
		&b.Token,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = domain.NormalizeDate(b.Date)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

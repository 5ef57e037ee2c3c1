package roombooking

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

const table = "room_bookings"

var columns = []string{
	"id",
	"room_id",
	"room_name",
	"date",
	"start_time",
	"end_time",
	"floor_number",
	"users",
	"status",
	"token",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований переговорных
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование.
// Пересечение с другой бронью той же комнаты отклоняется БД (room_bookings_no_overlap) -> ErrConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.RoomBooking) (*domain.RoomBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("room_id", "room_name", "date", "start_time", "end_time", "floor_number", "users", "status", "token").
		Values(
			booking.RoomID,
			booking.RoomName,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.FloorNumber,
			pq.Array(nonNil(booking.Users)),
			booking.Status,
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

// GetByID получает бронирование по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RoomBooking, error) {
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

func (r *Repository) List(ctx context.Context) ([]*domain.RoomBooking, error) {
	return r.list(ctx, "List", psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_time DESC", "id DESC"))
}

// ListByRoomAndDate возвращает брони комнаты на календарный день.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*domain.RoomBooking, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"room_id": roomID, "date": date}).
		OrderBy("start_time")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "ListByRoomAndDate", builder)
}

// ListByDate возвращает все брони переговорных на календарный день
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.RoomBooking, error) {
	return r.list(ctx, "ListByDate", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time"))
}

// ListUpcomingByToken брони начиная с даты from, где token - владелец или участник
func (r *Repository) ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.RoomBooking, error) {
	return r.list(ctx, "ListUpcomingByToken", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Or{
			squirrel.Eq{"token": token},
			squirrel.Expr("? = ANY(users)", token),
		}).
		OrderBy("start_time"))
}

// ListByOwner все брони, созданные владельцем token
func (r *Repository) ListByOwner(ctx context.Context, token string) ([]*domain.RoomBooking, error) {
	return r.list(ctx, "ListByOwner", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"token": token}).
		OrderBy("id"))
}

// Update сохраняет изменения брони
func (r *Repository) Update(ctx context.Context, booking *domain.RoomBooking) (*domain.RoomBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("room_id", booking.RoomID).
		Set("room_name", booking.RoomName).
		Set("date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("floor_number", booking.FloorNumber).
		Set("users", pq.Array(nonNil(booking.Users))).
		Set("status", booking.Status).
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

// Delete удаляет бронь
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

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.RoomBooking, error) {
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

	bookings := make([]*domain.RoomBooking, 0)
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

func scanBooking(row scanner) (*domain.RoomBooking, error) {
	var (
		b                    domain.RoomBooking
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.RoomName,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.FloorNumber,
		pq.Array(&b.Users),
		&b.Status,
		&b.Token,
		&createdAt,
		&updatedAt,
	)
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

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

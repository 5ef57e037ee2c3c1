package ledger

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

const table = "overall_bookings"

var columns = []string{"id", "token", "amenity", "booking_id", "date", "details", "created_at"}

// Repository сводный журнал бронирований
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись. Повтор пары (booking_id, amenity) -> ErrDuplicateEntry.
func (r *Repository) Create(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("token", "amenity", "booking_id", "date", "details").
		Values(entry.Token, string(entry.Amenity), entry.BookingID, entry.Date, pq.Array(nonNil(entry.Details))).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: Create - insert: %v", ErrDuplicateEntry, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	return entry, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByBooking получает запись по паре (bookingID, amenity)
func (r *Repository) GetByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) (*domain.LedgerEntry, error) {
	return r.get(ctx, "GetByBooking", squirrel.Eq{"booking_id": bookingID, "amenity": string(amenity)})
}

func (r *Repository) List(ctx context.Context) ([]*domain.LedgerEntry, error) {
	return r.list(ctx, "List", psqlbuilder.Select(columns...).
		From(table).
		OrderBy("date DESC", "id DESC"))
}

// ListUpcomingByToken записи владельца token начиная с даты from
func (r *Repository) ListUpcomingByToken(ctx context.Context, token string, from time.Time) ([]*domain.LedgerEntry, error) {
	return r.list(ctx, "ListUpcomingByToken", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.GtOrEq{"date": from}).
		OrderBy("date", "id"))
}

// Update сохраняет дату и детали записи
func (r *Repository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("date", entry.Date).
		Set("details", pq.Array(nonNil(entry.Details))).
		Where(squirrel.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Update", query, args)
}

// DeleteByBooking удаляет запись по паре (bookingID, amenity)
func (r *Repository) DeleteByBooking(ctx context.Context, bookingID int64, amenity domain.Amenity) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"booking_id": bookingID, "amenity": string(amenity)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBooking - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "DeleteByBooking", query, args)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Eq) (*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table).Where(where)
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan entry: %v", ErrScanRow, op, err)
	}

	return entry, nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]*domain.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan entry: %v", ErrScanRow, op, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*domain.LedgerEntry, error) {
	var (
		e         domain.LedgerEntry
		amenity   string
		createdAt sql.NullTime
	)

	if err := row.Scan(&e.ID, &e.Token, &amenity, &e.BookingID, &e.Date, pq.Array(&e.Details), &createdAt); err != nil {
		return nil, err
	}

	e.Amenity = domain.Amenity(amenity)
	e.Date = domain.NormalizeDate(e.Date)
	e.CreatedAt = createdAt.Time

	return &e, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FacilityBooking/internal/domain"
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityBooking/pkg/psqlbuilder"
)

const table = "meeting_rooms"

var columns = []string{"id", "name", "capacity", "floor_number"}

// Repository справочник переговорных
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает переговорную по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MeetingRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.MeetingRoom
	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.Name, &room.Capacity, &room.FloorNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan room: %v", ErrScanRow, err)
	}

	return &room, nil
}

// List возвращает все переговорные
func (r *Repository) List(ctx context.Context) ([]*domain.MeetingRoom, error) {
	return r.list(ctx, "List", psqlbuilder.Select(columns...).From(table).OrderBy("id"))
}

// ListByMinCapacity возвращает переговорные вместимостью не меньше capacity
func (r *Repository) ListByMinCapacity(ctx context.Context, capacity int) ([]*domain.MeetingRoom, error) {
	return r.list(ctx, "ListByMinCapacity", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.GtOrEq{"capacity": capacity}).
		OrderBy("id"))
}

// Count возвращает общее число переговорных
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.MeetingRoom, error) {
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

	rooms := make([]*domain.MeetingRoom, 0)
	for rows.Next() {
		var room domain.MeetingRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.FloorNumber); err != nil {
			return nil, fmt.Errorf("%w: %s - scan room: %v", ErrScanRow, op, err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return rooms, nil
}

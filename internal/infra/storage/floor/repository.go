package floor

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

const table = "floors"

var columns = []string{
	"floor_number",
	"floor_name",
	"starting_seat_no",
	"ending_seat_no",
	"capacity",
}

// Repository справочник этажей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByNumber получает этаж по номеру
func (r *Repository) GetByNumber(ctx context.Context, number int) (*domain.Floor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"floor_number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.Floor
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.Number,
		&f.Name,
		&f.StartingSeatNo,
		&f.EndingSeatNo,
		&f.Capacity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFloorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - scan floor: %v", ErrScanRow, err)
	}

	return &f, nil
}

// List возвращает все этажи по возрастанию номера
func (r *Repository) List(ctx context.Context) ([]*domain.Floor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("floor_number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	floors := make([]*domain.Floor, 0)
	for rows.Next() {
		var f domain.Floor
		if err := rows.Scan(&f.Number, &f.Name, &f.StartingSeatNo, &f.EndingSeatNo, &f.Capacity); err != nil {
			return nil, fmt.Errorf("%w: List - scan floor: %v", ErrScanRow, err)
		}
		floors = append(floors, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrExecQuery, err)
	}

	return floors, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"railshift/models"
)

type PostgresWagonRepo struct {
	*PostgresStore[models.Wagon]
}

func NewPostgresWagonRepo(db *sql.DB) *PostgresWagonRepo {
	return &PostgresWagonRepo{PostgresStore: NewPostgresStore(db, wagonTable)}
}

// GetByIDs loads wagons in one round trip. Unknown ids are skipped.
func (r *PostgresWagonRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Wagon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf("SELECT %s FROM wagon WHERE id IN (%s) ORDER BY id",
		r.selectColumns(), strings.Join(placeholders, ","))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("wagon: get by ids: %w", err)
	}
	defer rows.Close()

	var wagons []models.Wagon
	for rows.Next() {
		w, err := wagonTable.Scan(rows)
		if err != nil {
			return nil, err
		}
		wagons = append(wagons, *w)
	}
	return wagons, rows.Err()
}

func (r *PostgresWagonRepo) UpdateStatus(ctx context.Context, id int64, u models.WagonStatusUpdate) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE wagon SET status = $1, next_status = $2 WHERE id = $3`,
		u.Status, u.NextStatus, id)
	if err != nil {
		return fmt.Errorf("wagon: update status: %w", err)
	}
	return affected(res)
}

func (r *PostgresWagonRepo) UpdatePosition(ctx context.Context, id int64, u models.WagonPositionUpdate) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE wagon SET current_location_id = $1, rail = $2, position = $3 WHERE id = $4`,
		u.LocationID, u.Rail, u.Position, id)
	if err != nil {
		return fmt.Errorf("wagon: update position: %w", err)
	}
	return affected(res)
}

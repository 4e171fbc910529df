package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/calcpad-server/internal/model"
)

var _ model.CalculationStore = (*CalculationRepository)(nil)

type CalculationRepository struct {
	db *Connection
}

func NewCalculationRepository(db *Connection) *CalculationRepository {
	return &CalculationRepository{
		db: db,
	}
}

func (r *CalculationRepository) Create(ctx context.Context, calculation model.Calculation) (model.Calculation, error) {
	query := `INSERT INTO calculations (user_id, a, b, type, result)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, a, b, type, result, created_at`

	var saved model.Calculation
	err := r.db.QueryRowContext(ctx, query,
		calculation.UserID, calculation.A, calculation.B, calculation.Type, calculation.Result,
	).Scan(
		&saved.ID, &saved.UserID, &saved.A, &saved.B, &saved.Type, &saved.Result, &saved.CreatedAt,
	)
	if err != nil {
		return model.Calculation{}, fmt.Errorf("failed to create calculation: %w", err)
	}

	return saved, nil
}

func (r *CalculationRepository) GetByID(ctx context.Context, id int64) (model.Calculation, error) {
	var calculation model.Calculation
	query := `SELECT id, user_id, a, b, type, result, created_at
			  FROM calculations WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&calculation.ID, &calculation.UserID, &calculation.A, &calculation.B,
		&calculation.Type, &calculation.Result, &calculation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Calculation{}, model.ErrNotFound
		}
		return model.Calculation{}, fmt.Errorf("failed to get calculation by id: %w", err)
	}

	return calculation, nil
}

func (r *CalculationRepository) ListByUserID(ctx context.Context, userID int64, skip, limit int) ([]model.Calculation, error) {
	query := `SELECT id, user_id, a, b, type, result, created_at
			  FROM calculations WHERE user_id = $1
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer rows.Close()

	calculations := make([]model.Calculation, 0)
	for rows.Next() {
		var calculation model.Calculation
		if err := rows.Scan(
			&calculation.ID, &calculation.UserID, &calculation.A, &calculation.B,
			&calculation.Type, &calculation.Result, &calculation.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calculations = append(calculations, calculation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read calculations: %w", err)
	}

	return calculations, nil
}

func (r *CalculationRepository) Update(ctx context.Context, calculation model.Calculation) (model.Calculation, error) {
	query := `UPDATE calculations
			  SET a = $3, b = $4, type = $5, result = $6
			  WHERE id = $1 AND user_id = $2
			  RETURNING id, user_id, a, b, type, result, created_at`

	var saved model.Calculation
	err := r.db.QueryRowContext(ctx, query,
		calculation.ID, calculation.UserID, calculation.A, calculation.B, calculation.Type, calculation.Result,
	).Scan(
		&saved.ID, &saved.UserID, &saved.A, &saved.B, &saved.Type, &saved.Result, &saved.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Calculation{}, model.ErrNotFound
		}
		return model.Calculation{}, fmt.Errorf("failed to update calculation: %w", err)
	}

	return saved, nil
}

func (r *CalculationRepository) Delete(ctx context.Context, id int64, userID int64) error {
	query := `DELETE FROM calculations WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *CalculationRepository) StatsByUserID(ctx context.Context, userID int64) (model.CalculationStats, error) {
	query := `SELECT type, COUNT(*), AVG(result), MIN(result), MAX(result)
			  FROM calculations WHERE user_id = $1
			  GROUP BY type
			  ORDER BY type`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return model.CalculationStats{}, fmt.Errorf("failed to query calculation stats: %w", err)
	}
	defer rows.Close()

	stats := model.CalculationStats{ByOperation: make([]model.OperationStats, 0)}
	for rows.Next() {
		var op model.OperationStats
		if err := rows.Scan(&op.Operation, &op.Count, &op.AverageResult, &op.MinResult, &op.MaxResult); err != nil {
			return model.CalculationStats{}, fmt.Errorf("failed to scan calculation stats: %w", err)
		}
		stats.ByOperation = append(stats.ByOperation, op)
		stats.TotalCalculations += op.Count
	}
	if err := rows.Err(); err != nil {
		return model.CalculationStats{}, fmt.Errorf("failed to read calculation stats: %w", err)
	}

	return stats, nil
}

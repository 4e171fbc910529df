package model

import (
	"context"
	"time"
)

// CalculationStore defines persistence operations for calculations.
type CalculationStore interface {
	Create(ctx context.Context, calculation Calculation) (Calculation, error)
	GetByID(ctx context.Context, id int64) (Calculation, error)
	ListByUserID(ctx context.Context, userID int64, skip, limit int) ([]Calculation, error)
	Update(ctx context.Context, calculation Calculation) (Calculation, error)
	Delete(ctx context.Context, id int64, userID int64) error
	StatsByUserID(ctx context.Context, userID int64) (CalculationStats, error)
}

// Calculation represents a stored calculation with its derived result.
type Calculation struct {
	ID        int64
	UserID    int64
	A         float64
	B         float64
	Type      string
	Result    float64
	CreatedAt time.Time
}

// CreateCalculationParams contains parameters to create a calculation.
type CreateCalculationParams struct {
	UserID int64
	A      float64
	B      float64
	Type   string
}

// UpdateCalculationParams contains optional fields for a calculation update.
// Nil fields are left unchanged, the result is recomputed either way.
type UpdateCalculationParams struct {
	ID     int64
	UserID int64
	A      *float64
	B      *float64
	Type   *string
}

// OperationStats aggregates stored results for a single operation type.
type OperationStats struct {
	Operation     string
	Count         int64
	AverageResult float64
	MinResult     float64
	MaxResult     float64
}

// CalculationStats summarizes a user's calculation history.
type CalculationStats struct {
	TotalCalculations int64
	ByOperation       []OperationStats
}

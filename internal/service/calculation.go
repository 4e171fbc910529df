package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avolkov/calcpad-server/internal/calc"
	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
)

type Calculation struct {
	calculationStore model.CalculationStore
	dispatcher       *calc.Dispatcher
	factory          *calc.Factory
	logger           *logger.Logger
}

func NewCalculation(
	calculationStore model.CalculationStore,
	dispatcher *calc.Dispatcher,
	factory *calc.Factory,
	logger *logger.Logger,
) *Calculation {
	return &Calculation{
		calculationStore: calculationStore,
		dispatcher:       dispatcher,
		factory:          factory,
		logger:           logger,
	}
}

// Compute runs a one-off named operation without persisting anything.
func (s *Calculation) Compute(ctx context.Context, operation string, a, b float64) (float64, error) {
	s.logger.Debug("Calculation service: computing operation",
		"operation", operation)

	result, err := s.dispatcher.Calculate(operation, a, b)
	if err != nil {
		s.logger.Info("Calculation service: computation failed",
			"operation", operation,
			"error", err.Error())
		return 0, err
	}

	return result, nil
}

// Create computes the result for the given operands and persists the
// calculation for the owning user.
func (s *Calculation) Create(ctx context.Context, params model.CreateCalculationParams) (model.Calculation, error) {
	s.logger.Debug("Calculation service: creating calculation",
		"user_id", params.UserID,
		"type", params.Type)

	result, err := s.factory.Calculate(params.Type, params.A, params.B)
	if err != nil {
		s.logger.Info("Calculation service: computation failed",
			"user_id", params.UserID,
			"type", params.Type,
			"error", err.Error())
		return model.Calculation{}, err
	}

	calculation, err := s.calculationStore.Create(ctx, model.Calculation{
		UserID: params.UserID,
		A:      params.A,
		B:      params.B,
		Type:   params.Type,
		Result: result,
	})
	if err != nil {
		s.logger.Error("Calculation service: failed to create calculation",
			"user_id", params.UserID,
			"error", err.Error())
		return model.Calculation{}, fmt.Errorf("failed to create calculation: %w", err)
	}

	s.logger.Info("Calculation service: calculation created successfully",
		"user_id", params.UserID,
		"calculation_id", calculation.ID)

	return calculation, nil
}

// List returns the user's calculations newest-first.
func (s *Calculation) List(ctx context.Context, userID int64, skip, limit int) ([]model.Calculation, error) {
	s.logger.Debug("Calculation service: listing calculations",
		"user_id", userID)

	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}

	calculations, err := s.calculationStore.ListByUserID(ctx, userID, skip, limit)
	if err != nil {
		s.logger.Error("Calculation service: failed to list calculations",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}

	return calculations, nil
}

// Get returns a calculation if it belongs to the user. Records owned by
// other users are reported as missing.
func (s *Calculation) Get(ctx context.Context, id, userID int64) (model.Calculation, error) {
	s.logger.Debug("Calculation service: getting calculation",
		"calculation_id", id,
		"user_id", userID)

	calculation, err := s.calculationStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Calculation{}, &model.NotFoundError{Resource: "Calculation"}
	}
	if err != nil {
		s.logger.Error("Calculation service: failed to get calculation by id",
			"calculation_id", id,
			"error", err.Error())
		return model.Calculation{}, fmt.Errorf("failed to get calculation by id: %w", err)
	}

	if calculation.UserID != userID {
		s.logger.Info("Calculation service: calculation owned by another user",
			"calculation_id", id,
			"user_id", userID)
		return model.Calculation{}, &model.NotFoundError{Resource: "Calculation"}
	}

	return calculation, nil
}

// Update applies the supplied fields and recomputes the stored result.
// Nothing is written when the recomputation fails.
func (s *Calculation) Update(ctx context.Context, params model.UpdateCalculationParams) (model.Calculation, error) {
	s.logger.Debug("Calculation service: updating calculation",
		"calculation_id", params.ID,
		"user_id", params.UserID)

	calculation, err := s.Get(ctx, params.ID, params.UserID)
	if err != nil {
		return model.Calculation{}, err
	}

	if params.A != nil {
		calculation.A = *params.A
	}
	if params.B != nil {
		calculation.B = *params.B
	}
	if params.Type != nil {
		calculation.Type = *params.Type
	}

	result, err := s.factory.Calculate(calculation.Type, calculation.A, calculation.B)
	if err != nil {
		s.logger.Info("Calculation service: recomputation failed",
			"calculation_id", params.ID,
			"error", err.Error())
		return model.Calculation{}, err
	}
	calculation.Result = result

	updated, err := s.calculationStore.Update(ctx, calculation)
	if errors.Is(err, model.ErrNotFound) {
		return model.Calculation{}, &model.NotFoundError{Resource: "Calculation"}
	}
	if err != nil {
		s.logger.Error("Calculation service: failed to update calculation",
			"calculation_id", params.ID,
			"error", err.Error())
		return model.Calculation{}, fmt.Errorf("failed to update calculation: %w", err)
	}

	s.logger.Info("Calculation service: calculation updated successfully",
		"calculation_id", updated.ID)

	return updated, nil
}

// Delete removes a calculation if it belongs to the user.
func (s *Calculation) Delete(ctx context.Context, id, userID int64) error {
	s.logger.Debug("Calculation service: deleting calculation",
		"calculation_id", id,
		"user_id", userID)

	err := s.calculationStore.Delete(ctx, id, userID)
	if errors.Is(err, model.ErrNotFound) {
		return &model.NotFoundError{Resource: "Calculation"}
	}
	if err != nil {
		s.logger.Error("Calculation service: failed to delete calculation",
			"calculation_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete calculation: %w", err)
	}

	s.logger.Info("Calculation service: calculation deleted successfully",
		"calculation_id", id)

	return nil
}

// Stats aggregates the user's stored results grouped by operation type.
func (s *Calculation) Stats(ctx context.Context, userID int64) (model.CalculationStats, error) {
	s.logger.Debug("Calculation service: getting calculation stats",
		"user_id", userID)

	stats, err := s.calculationStore.StatsByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Calculation service: failed to get calculation stats",
			"user_id", userID,
			"error", err.Error())
		return model.CalculationStats{}, fmt.Errorf("failed to get calculation stats: %w", err)
	}

	return stats, nil
}

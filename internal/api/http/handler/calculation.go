package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/avolkov/calcpad-server/internal/calc"
	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
)

// CalculationService defines calculator and history operations.
type CalculationService interface {
	Compute(ctx context.Context, operation string, a, b float64) (float64, error)
	Create(ctx context.Context, params model.CreateCalculationParams) (model.Calculation, error)
	List(ctx context.Context, userID int64, skip, limit int) ([]model.Calculation, error)
	Get(ctx context.Context, id, userID int64) (model.Calculation, error)
	Update(ctx context.Context, params model.UpdateCalculationParams) (model.Calculation, error)
	Delete(ctx context.Context, id, userID int64) error
	Stats(ctx context.Context, userID int64) (model.CalculationStats, error)
}

// Calculation handles HTTP endpoints for calculations.
type Calculation struct {
	calculationService CalculationService
	contextManager     model.ContextManager
	logger             *logger.Logger
}

// NewCalculation creates a new Calculation handler.
func NewCalculation(calculationService CalculationService, contextManager model.ContextManager, logger *logger.Logger) *Calculation {
	return &Calculation{
		calculationService: calculationService,
		contextManager:     contextManager,
		logger:             logger,
	}
}

// Calculate runs a one-off operation without persisting anything.
// The operation name is matched case-insensitively against the full
// dispatcher set and echoed back lowercased.
func (h *Calculation) Calculate(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Calculation handler: processing calculate request")

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.calculationService.Compute(r.Context(), req.Operation, *req.Num1, *req.Num2)
	if err != nil {
		h.logger.Error("Calculation handler: calculate failed",
			"operation", req.Operation,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Calculation handler: calculation performed successfully",
		"operation", req.Operation,
		"result", result)

	respondJSON(w, http.StatusOK, CalculateResponse{
		Result:    result,
		Operation: strings.ToLower(req.Operation),
		Num1:      *req.Num1,
		Num2:      *req.Num2,
	})
}

// Create computes and persists a calculation for the authenticated user.
func (h *Calculation) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := h.extractUserIDFromContext(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Calculation handler: processing create calculation request",
		"user_id", userID)

	var req CalculationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err)
		return
	}

	calculation, err := h.calculationService.Create(r.Context(), model.CreateCalculationParams{
		UserID: userID,
		A:      *req.A,
		B:      *req.B,
		Type:   req.Type,
	})
	if err != nil {
		h.logger.Error("Calculation handler: create calculation failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Calculation handler: calculation created successfully",
		"calculation_id", calculation.ID,
		"user_id", userID)

	respondJSON(w, http.StatusCreated, newCalculationResponse(calculation))
}

// List returns the authenticated user's calculations newest-first.
func (h *Calculation) List(w http.ResponseWriter, r *http.Request) {
	userID, err := h.extractUserIDFromContext(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Calculation handler: processing list calculations request",
		"user_id", userID)

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		handleError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 100)
	if err != nil {
		handleError(w, err)
		return
	}

	calculations, err := h.calculationService.List(r.Context(), userID, skip, limit)
	if err != nil {
		h.logger.Error("Calculation handler: list calculations failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	responses := make([]CalculationResponse, 0, len(calculations))
	for _, calculation := range calculations {
		responses = append(responses, newCalculationResponse(calculation))
	}

	respondJSON(w, http.StatusOK, responses)
}

// Get returns one of the authenticated user's calculations by ID.
func (h *Calculation) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := h.extractUserIDFromContext(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Calculation handler: processing get calculation request",
		"calculation_id", id,
		"user_id", userID)

	calculation, err := h.calculationService.Get(r.Context(), id, userID)
	if err != nil {
		h.logger.Error("Calculation handler: get calculation failed",
			"calculation_id", id,
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newCalculationResponse(calculation))
}

// Update applies a partial update and returns the recomputed calculation.
func (h *Calculation) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := h.extractUserIDFromContext(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Calculation handler: processing update calculation request",
		"calculation_id", id,
		"user_id", userID)

	var req CalculationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err)
		return
	}

	calculation, err := h.calculationService.Update(r.Context(), model.UpdateCalculationParams{
		ID:     id,
		UserID: userID,
		A:      req.A,
		B:      req.B,
		Type:   req.Type,
	})
	if err != nil {
		h.logger.Error("Calculation handler: update calculation failed",
			"calculation_id", id,
			"user_id", userID,
			"error", err.Error())
		var divisionErr *calc.DivisionByZeroError
		if errors.As(err, &divisionErr) {
			respondError(w, http.StatusBadRequest, "Division by zero is not allowed")
			return
		}
		handleError(w, err)
		return
	}

	h.logger.Info("Calculation handler: calculation updated successfully",
		"calculation_id", calculation.ID,
		"user_id", userID)

	respondJSON(w, http.StatusOK, newCalculationResponse(calculation))
}

// Delete removes one of the authenticated user's calculations.
func (h *Calculation) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := h.extractUserIDFromContext(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := idParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Calculation handler: processing delete calculation request",
		"calculation_id", id,
		"user_id", userID)

	if err := h.calculationService.Delete(r.Context(), id, userID); err != nil {
		h.logger.Error("Calculation handler: delete calculation failed",
			"calculation_id", id,
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Calculation handler: calculation deleted successfully",
		"calculation_id", id,
		"user_id", userID)

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Calculation deleted successfully"})
}

// Stats returns aggregated statistics over the user's calculations.
func (h *Calculation) Stats(w http.ResponseWriter, r *http.Request) {
	userID, err := h.extractUserIDFromContext(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Calculation handler: processing stats request",
		"user_id", userID)

	stats, err := h.calculationService.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Calculation handler: stats failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newStatsResponse(stats))
}

func (h *Calculation) extractUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		return 0, model.ErrMissingToken
	}
	return userID, nil
}

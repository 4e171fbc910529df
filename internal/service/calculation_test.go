package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/calcpad-server/internal/calc"
	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
)

// MockCalculationStore mocks the CalculationStore interface
type MockCalculationStore struct {
	mock.Mock
}

func (m *MockCalculationStore) Create(ctx context.Context, calculation model.Calculation) (model.Calculation, error) {
	args := m.Called(ctx, calculation)
	return args.Get(0).(model.Calculation), args.Error(1)
}

func (m *MockCalculationStore) GetByID(ctx context.Context, id int64) (model.Calculation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Calculation), args.Error(1)
}

func (m *MockCalculationStore) ListByUserID(ctx context.Context, userID int64, skip, limit int) ([]model.Calculation, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).([]model.Calculation), args.Error(1)
}

func (m *MockCalculationStore) Update(ctx context.Context, calculation model.Calculation) (model.Calculation, error) {
	args := m.Called(ctx, calculation)
	return args.Get(0).(model.Calculation), args.Error(1)
}

func (m *MockCalculationStore) Delete(ctx context.Context, id int64, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockCalculationStore) StatsByUserID(ctx context.Context, userID int64) (model.CalculationStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.CalculationStats), args.Error(1)
}

func newCalculationService(store *MockCalculationStore) *Calculation {
	return NewCalculation(store, calc.NewDispatcher(), calc.NewFactory(), logger.New(0))
}

func TestCalculationService_Compute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := newCalculationService(&MockCalculationStore{})

		result, err := service.Compute(context.Background(), "add", 2, 3)
		require.NoError(t, err)
		assert.Equal(t, 5.0, result)
	})

	t.Run("unknown operation", func(t *testing.T) {
		service := newCalculationService(&MockCalculationStore{})

		_, err := service.Compute(context.Background(), "factorial", 5, 0)
		var opErr *calc.InvalidOperationError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "factorial", opErr.Operation)
	})

	t.Run("division by zero", func(t *testing.T) {
		service := newCalculationService(&MockCalculationStore{})

		_, err := service.Compute(context.Background(), "divide", 10, 0)
		var divErr *calc.DivisionByZeroError
		require.ErrorAs(t, err, &divErr)
		assert.Equal(t, "Cannot divide by zero", divErr.Error())
	})
}

func TestCalculationService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("Create", mock.Anything, mock.MatchedBy(func(c model.Calculation) bool {
			return c.UserID == 1 && c.Type == "add" && c.Result == 15.0
		})).Return(model.Calculation{ID: 3, UserID: 1, A: 10, B: 5, Type: "add", Result: 15}, nil)

		service := newCalculationService(mockStore)

		calculation, err := service.Create(context.Background(), model.CreateCalculationParams{
			UserID: 1,
			A:      10,
			B:      5,
			Type:   "add",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), calculation.ID)
		assert.Equal(t, 15.0, calculation.Result)
		mockStore.AssertExpectations(t)
	})

	t.Run("division by zero is not persisted", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		service := newCalculationService(mockStore)

		_, err := service.Create(context.Background(), model.CreateCalculationParams{
			UserID: 1,
			A:      10,
			B:      0,
			Type:   "divide",
		})
		var divErr *calc.DivisionByZeroError
		require.ErrorAs(t, err, &divErr)
		mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unsupported type is not persisted", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		service := newCalculationService(mockStore)

		_, err := service.Create(context.Background(), model.CreateCalculationParams{
			UserID: 1,
			A:      2,
			B:      10,
			Type:   "power",
		})
		var opErr *calc.UnsupportedOperationError
		require.ErrorAs(t, err, &opErr)
		mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store error", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("Create", mock.Anything, mock.Anything).Return(model.Calculation{}, errors.New("database error"))

		service := newCalculationService(mockStore)

		_, err := service.Create(context.Background(), model.CreateCalculationParams{
			UserID: 1,
			A:      10,
			B:      5,
			Type:   "add",
		})
		assert.Error(t, err)
	})
}

func TestCalculationService_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("ListByUserID", mock.Anything, int64(1), 0, 100).Return([]model.Calculation{
			{ID: 2, UserID: 1, Type: "add", Result: 15},
			{ID: 1, UserID: 1, Type: "divide", Result: 2},
		}, nil)

		service := newCalculationService(mockStore)

		calculations, err := service.List(context.Background(), 1, 0, 100)
		require.NoError(t, err)
		require.Len(t, calculations, 2)
		assert.Equal(t, int64(2), calculations[0].ID)
		mockStore.AssertExpectations(t)
	})

	t.Run("negative paging is clamped", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("ListByUserID", mock.Anything, int64(1), 0, 0).Return([]model.Calculation{}, nil)

		service := newCalculationService(mockStore)

		calculations, err := service.List(context.Background(), 1, -5, -10)
		require.NoError(t, err)
		assert.Empty(t, calculations)
		mockStore.AssertExpectations(t)
	})
}

func TestCalculationService_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("GetByID", mock.Anything, int64(3)).Return(model.Calculation{ID: 3, UserID: 1, Type: "add", Result: 15}, nil)

		service := newCalculationService(mockStore)

		calculation, err := service.Get(context.Background(), 3, 1)
		require.NoError(t, err)
		assert.Equal(t, 15.0, calculation.Result)
	})

	t.Run("not found", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("GetByID", mock.Anything, int64(42)).Return(model.Calculation{}, model.ErrNotFound)

		service := newCalculationService(mockStore)

		_, err := service.Get(context.Background(), 42, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.EqualError(t, err, "Calculation not found")
	})

	t.Run("owned by another user", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("GetByID", mock.Anything, int64(3)).Return(model.Calculation{ID: 3, UserID: 2}, nil)

		service := newCalculationService(mockStore)

		_, err := service.Get(context.Background(), 3, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.EqualError(t, err, "Calculation not found")
	})
}

func TestCalculationService_Update(t *testing.T) {
	existing := model.Calculation{ID: 3, UserID: 1, A: 10, B: 5, Type: "add", Result: 15}

	t.Run("recomputes on type change", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
		mockStore.On("Update", mock.Anything, mock.MatchedBy(func(c model.Calculation) bool {
			return c.Type == "multiply" && c.Result == 50.0 && c.A == 10 && c.B == 5
		})).Return(model.Calculation{ID: 3, UserID: 1, A: 10, B: 5, Type: "multiply", Result: 50}, nil)

		service := newCalculationService(mockStore)

		updated, err := service.Update(context.Background(), model.UpdateCalculationParams{
			ID:     3,
			UserID: 1,
			Type:   strPtr("multiply"),
		})
		require.NoError(t, err)
		assert.Equal(t, 50.0, updated.Result)
		mockStore.AssertExpectations(t)
	})

	t.Run("division by zero is not persisted", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)

		service := newCalculationService(mockStore)

		_, err := service.Update(context.Background(), model.UpdateCalculationParams{
			ID:     3,
			UserID: 1,
			B:      floatPtr(0),
			Type:   strPtr("divide"),
		})
		var divErr *calc.DivisionByZeroError
		require.ErrorAs(t, err, &divErr)
		mockStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("GetByID", mock.Anything, int64(42)).Return(model.Calculation{}, model.ErrNotFound)

		service := newCalculationService(mockStore)

		_, err := service.Update(context.Background(), model.UpdateCalculationParams{
			ID:     42,
			UserID: 1,
			A:      floatPtr(1),
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestCalculationService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("Delete", mock.Anything, int64(3), int64(1)).Return(nil)

		service := newCalculationService(mockStore)

		require.NoError(t, service.Delete(context.Background(), 3, 1))
		mockStore.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("Delete", mock.Anything, int64(42), int64(1)).Return(model.ErrNotFound)

		service := newCalculationService(mockStore)

		err := service.Delete(context.Background(), 42, 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.EqualError(t, err, "Calculation not found")
	})
}

func TestCalculationService_Stats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("StatsByUserID", mock.Anything, int64(1)).Return(model.CalculationStats{
			TotalCalculations: 3,
			ByOperation: []model.OperationStats{
				{Operation: "add", Count: 2, AverageResult: 10, MinResult: 5, MaxResult: 15},
				{Operation: "divide", Count: 1, AverageResult: 2, MinResult: 2, MaxResult: 2},
			},
		}, nil)

		service := newCalculationService(mockStore)

		stats, err := service.Stats(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalCalculations)
		require.Len(t, stats.ByOperation, 2)
		assert.Equal(t, "add", stats.ByOperation[0].Operation)
	})

	t.Run("store error", func(t *testing.T) {
		mockStore := &MockCalculationStore{}
		mockStore.On("StatsByUserID", mock.Anything, int64(1)).Return(model.CalculationStats{}, errors.New("database error"))

		service := newCalculationService(mockStore)

		_, err := service.Stats(context.Background(), 1)
		assert.Error(t, err)
	})
}

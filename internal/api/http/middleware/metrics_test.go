package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Handle(t *testing.T) {
	t.Parallel()

	mux := chi.NewRouter()
	mux.Use(NewMetrics().Handle)
	mux.Get("/calculations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":3}`))
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/calculations/3", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"id":3}`, rr.Body.String())
}

func TestMetrics_Handle_ErrorStatus(t *testing.T) {
	t.Parallel()

	handler := NewMetrics().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/calculate", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

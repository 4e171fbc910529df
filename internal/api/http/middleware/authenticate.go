package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
)

// Authenticate validates bearer tokens and injects the user ID into the
// request context.
type Authenticate struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenManager model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenManager: tokenManager, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the token and passes
// the request on with the user ID in context. Requests without a bearer
// header are rejected with 403, requests with an invalid token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tokenString string
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			m.respondError(w, http.StatusForbidden, "Not authenticated")
			return
		}

		userID, err := m.tokenManager.ParseAccessToken(tokenString)
		if err != nil {
			m.logger.Info("Authenticate middleware: token rejected",
				"error", err.Error())
			w.Header().Set("WWW-Authenticate", "Bearer")
			m.respondError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserIDToContext(r.Context(), userID)))
	})
}

func (m *Authenticate) respondError(w http.ResponseWriter, statusCode int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpcontext "github.com/avolkov/calcpad-server/internal/api/http/context"
	"github.com/avolkov/calcpad-server/internal/testutil"
)

// MockTokenManager mocks the model.TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ParseAccessToken(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		authHeader  string
		parseUserID int64
		parseErr    error
		wantStatus  int
		wantDetail  string
	}{
		{
			name:       "missing authorization header",
			wantStatus: http.StatusForbidden,
			wantDetail: "Not authenticated",
		},
		{
			name:       "non-bearer scheme",
			authHeader: "Basic YWxpY2U6cGFzc3dvcmQ=",
			wantStatus: http.StatusForbidden,
			wantDetail: "Not authenticated",
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer ",
			wantStatus: http.StatusForbidden,
			wantDetail: "Not authenticated",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid",
			parseErr:   errors.New("token is malformed"),
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Could not validate credentials",
		},
		{
			name:        "valid token",
			authHeader:  "Bearer valid",
			parseUserID: 7,
			wantStatus:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokenManager := &MockTokenManager{}
			if token := strings.TrimPrefix(tt.authHeader, "Bearer "); token != "" && token != tt.authHeader {
				tokenManager.On("ParseAccessToken", token).Return(tt.parseUserID, tt.parseErr)
			}
			contextManager := httpcontext.NewManager()

			var gotUserID int64
			var nextCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID, _ = contextManager.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			m := NewAuthenticate(tokenManager, contextManager, testutil.MakeNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/calculations", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			m.Handle(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, tt.parseUserID, gotUserID)
				return
			}

			assert.False(t, nextCalled)

			var resp struct {
				Detail string `json:"detail"`
			}
			testutil.DecodeJSONBody(t, rr.Body, &resp)
			assert.Equal(t, tt.wantDetail, resp.Detail)

			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// MockService реализует интерфейс middlewarectx.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockService)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "валидный токен пускает запрос дальше",
			authHeader: "Bearer valid-token",
			setupMock: func(m *MockService) {
				m.On("ValidateToken", mock.Anything, "valid-token").
					Return(&models.User{UID: "uid-1", Username: "testuser"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "нет заголовка Authorization",
			authHeader:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
		{
			name:       "невалидный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockService) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("token is malformed"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectNext:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				// Идентичность передается только через контекст запроса
				assert.Equal(t, "testuser", r.Context().Value(User))
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			JWTMiddleware(mockSvc, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			mockSvc.AssertExpectations(t)
		})
	}
}

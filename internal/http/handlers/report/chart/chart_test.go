package chart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/report"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
)

// MockService реализует интерфейс chart.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SumByDateRange(ctx context.Context, userUID string, req models.DummyFilter) ([]models.ReportRow, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportRow), args.Error(1)
}

func TestChartHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		query          string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешный отчет по дням",
			query:   "unit=day&start_date=2024-01-01&end_date=2024-01-02",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SumByDateRange", mock.Anything, "uid-1", models.DummyFilter{
					Unit:      "day",
					StartDate: "2024-01-01",
					EndDate:   "2024-01-02",
				}).Return([]models.ReportRow{
					{Label: "2024-01-01", Total: decimal.RequireFromString("7")},
					{Label: "2024-01-02", Total: decimal.Zero},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"rows":[{"label":"2024-01-01","total":"7"},{"label":"2024-01-02","total":"0"}]}}`,
		},
		{
			name:           "ошибка валидации - отсутствуют обязательные параметры",
			query:          "",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Unit is a required field, field StartDate is a required field"}`,
		},
		{
			name:           "нет авторизации",
			query:          "unit=day&start_date=2024-01-01",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:    "неизвестная единица группировки",
			query:   "unit=fortnight&start_date=2024-01-01",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SumByDateRange", mock.Anything, "uid-1", mock.Anything).
					Return(nil, fmt.Errorf("%w: %q", report.ErrInvalidUnit, "fortnight"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"unknown time range unit"}`,
		},
		{
			name:    "некорректная дата",
			query:   "unit=day&start_date=01.01.2024",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SumByDateRange", mock.Anything, "uid-1", mock.Anything).
					Return(nil, fmt.Errorf("%w: start %q", expenseservice.ErrInvalidDate, "01.01.2024"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid report date"}`,
		},
		{
			name:    "ошибка сервиса",
			query:   "unit=day&start_date=2024-01-01",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SumByDateRange", mock.Anything, "uid-1", mock.Anything).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not build report"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockService)
			tt.setupMock(mockSvc)

			handler := New(logger, mockSvc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/chart?"+tt.query, nil)

			ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockSvc.AssertExpectations(t)
		})
	}
}

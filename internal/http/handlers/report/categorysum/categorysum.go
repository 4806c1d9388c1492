// Package categorysum реализует HTTP-обработчик отчёта по категориям расходов.
//
// Handler извлекает идентификатор пользователя из контекста, вызывает движок
// агрегирования через сервис и возвращает пары (категория, сумма),
// упорядоченные по убыванию суммы.
package categorysum

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Handler управляет HTTP-запросами отчёта по категориям.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для построения отчёта
}

// Service описывает интерфейс бизнес-логики отчёта по категориям.
type Service interface {
	SumByCategory(ctx context.Context, userUID string) ([]models.ReportRow, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отчёт по категориям
// @Description Возвращает суммы расходов текущего пользователя по категориям, по убыванию суммы.
// @Tags Reports
// @Produce  json
// @Success 200 {object} map[string]any "Строки отчёта"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.categorysum"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rows, err := h.service.SumByCategory(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build category report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	log.Info("success to build category report", slog.Int("rows", len(rows)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"rows": rows,
	}))
}

// Package chart реализует HTTP-обработчик отчёта по интервалам дат.
//
// Handler принимает параметры запроса (единица группировки и диапазон дат),
// валидирует их, извлекает идентификатор пользователя из контекста и возвращает
// строки отчёта в хронологическом порядке — включая интервалы с нулевой суммой,
// чтобы клиент мог построить непрерывный график.
package chart

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/report"
	expenseservice "github.com/magabrotheeeer/expense-tracker/internal/services/expense"
)

// Handler управляет HTTP-запросами отчёта по интервалам дат.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для построения отчёта
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики отчёта по интервалам дат.
type Service interface {
	SumByDateRange(ctx context.Context, userUID string, req models.DummyFilter) ([]models.ReportRow, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отчёт по интервалам дат
// @Description Возвращает суммы расходов текущего пользователя по интервалам (day, week, month, year) в диапазоне дат, включая интервалы с нулевой суммой.
// @Tags Reports
// @Produce  json
// @Param unit query string true "Единица группировки: day, week, month или year"
// @Param start_date query string true "Дата начала (2006-01-02)"
// @Param end_date query string false "Дата окончания (2006-01-02), по умолчанию сегодня"
// @Success 200 {object} map[string]any "Строки отчёта"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /reports/chart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.chart"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := models.DummyFilter{
		Unit:      r.URL.Query().Get("unit"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rows, err := h.service.SumByDateRange(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, report.ErrInvalidUnit) {
			log.Error("invalid time range unit", slog.String("unit", req.Unit))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown time range unit"))
			return
		}
		if errors.Is(err, expenseservice.ErrInvalidDate) {
			log.Error("invalid report date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid report date"))
			return
		}
		log.Error("failed to build chart report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	log.Info("success to build chart report", slog.Int("rows", len(rows)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"rows": rows,
	}))
}

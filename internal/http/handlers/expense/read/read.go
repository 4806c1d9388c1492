// Package read реализует HTTP-обработчик для получения конкретного расхода по ID.
//
// Handler извлекает ID из URL-параметров и идентификатор пользователя из контекста,
// вызывает бизнес-логику чтения и возвращает данные расхода в JSON-формате.
//
// Чужая запись неотличима от несуществующей: в обоих случаях возвращается 404,
// чтобы не раскрывать существование записей других пользователей.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// Handler обрабатывает запросы на получение расхода по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения расхода по ID
}

// Service описывает интерфейс бизнес-логики чтения расхода.
type Service interface {
	Read(ctx context.Context, id, userUID string) (*models.Expense, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос на получение расхода по ID.
//
// Выполняет:
// - Извлечение ID из URL и идентификатора пользователя из контекста.
// - Вызов бизнес-логики для чтения расхода.
// - Формирование JSON-ответа с данными или ошибкой.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id in url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Read(r.Context(), id, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("expense not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("expense not found"))
			return
		}
		log.Error("failed to read expense", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read expense"))
		return
	}

	log.Info("success to read expense", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"expense": res,
	}))
}

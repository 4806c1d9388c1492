// Package services содержит бизнес-логику для управления расходами,
// построения отчётов и кеширования.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/report"
)

// ErrInvalidDate возвращается, если дата диапазона отчёта не распознана.
var ErrInvalidDate = errors.New("invalid date")

// ExpenseRepository определяет методы для работы с расходами в хранилище.
// Все операции чтения и изменения принимают userUID и затрагивают
// только записи этого пользователя.
type ExpenseRepository interface {
	// CreateExpense добавляет новый расход и возвращает его ID.
	CreateExpense(ctx context.Context, entry models.Expense) (string, error)
	// ReadExpense возвращает расход по ID в пределах записей пользователя.
	ReadExpense(ctx context.Context, id, userUID string) (*models.Expense, error)
	// UpdateExpense обновляет данные расхода и возвращает количество изменённых записей.
	UpdateExpense(ctx context.Context, entry models.Expense, id, userUID string) (int, error)
	// RemoveExpense удаляет расход и возвращает количество удалённых записей.
	RemoveExpense(ctx context.Context, id, userUID string) (int, error)
	// ListExpenses возвращает список расходов пользователя с пагинацией.
	ListExpenses(ctx context.Context, userUID string, limit, offset int) ([]*models.Expense, error)
	// ListAllExpenses возвращает все расходы пользователя.
	ListAllExpenses(ctx context.Context, userUID string) ([]*models.Expense, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// InvalidateByPrefix удаляет все значения, ключи которых начинаются с prefix.
	InvalidateByPrefix(prefix string) error
}

// ExpenseService реализует бизнес-логику работы с расходами, включая отчёты и кеширование.
type ExpenseService struct {
	repo  ExpenseRepository
	cache Cache
	log   *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, cache Cache, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новый расход для пользователя и возвращает его ID.
// Владелец записи — всегда аутентифицированный пользователь из userUID,
// payload не может назначить другого владельца.
func (s *ExpenseService) Create(ctx context.Context, userUID string, req models.DummyExpense) (string, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}
	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp: %w", err)
	}

	entry := models.Expense{
		UserUID:     userUID,
		Amount:      amount,
		Timestamp:   timestamp,
		Category:    req.Category,
		Description: req.Description,
	}

	id, err := s.repo.CreateExpense(ctx, entry)
	if err != nil {
		return "", err
	}
	s.log.Info("created new expense", slog.String("id", id))

	s.invalidateReports(userUID)
	return id, nil
}

// Read возвращает расход по ID в пределах записей пользователя.
func (s *ExpenseService) Read(ctx context.Context, id, userUID string) (*models.Expense, error) {
	return s.repo.ReadExpense(ctx, id, userUID)
}

// Update обновляет расход и возвращает количество изменённых записей.
func (s *ExpenseService) Update(ctx context.Context, req models.DummyExpense, id, userUID string) (int, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %w", err)
	}

	entry := models.Expense{
		UserUID:     userUID,
		Amount:      amount,
		Timestamp:   timestamp,
		Category:    req.Category,
		Description: req.Description,
	}
	count, err := s.repo.UpdateExpense(ctx, entry, id, userUID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("updated expense in storage", slog.String("id", id))
		s.invalidateReports(userUID)
	}
	return count, nil
}

// Remove удаляет расход и возвращает количество удалённых записей.
func (s *ExpenseService) Remove(ctx context.Context, id, userUID string) (int, error) {
	count, err := s.repo.RemoveExpense(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.invalidateReports(userUID)
	}
	return count, nil
}

// List возвращает список расходов пользователя с пагинацией.
func (s *ExpenseService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Expense, error) {
	return s.repo.ListExpenses(ctx, userUID, limit, offset)
}

// SumByCategory строит отчёт по категориям для пользователя, используя кеш или хранилище.
func (s *ExpenseService) SumByCategory(ctx context.Context, userUID string) ([]models.ReportRow, error) {
	cacheKey := fmt.Sprintf("report:%s:categories", userUID)
	var cached []models.ReportRow
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read report from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	expenses, err := s.repo.ListAllExpenses(ctx, userUID)
	if err != nil {
		return nil, err
	}
	rows := report.SumByCategory(expenses)

	if err := s.cache.Set(cacheKey, rows, time.Hour); err != nil {
		s.log.Warn("failed to cache report", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return rows, nil
}

// SumByDateRange строит отчёт по интервалам дат для пользователя.
//
// Единица группировки проверяется до обращения к хранилищу.
// Дата окончания по умолчанию — сегодня; в любом случае она продлевается
// до конца календарного дня (23:59:59), чтобы диапазон был включительным.
func (s *ExpenseService) SumByDateRange(ctx context.Context, userUID string, req models.DummyFilter) ([]models.ReportRow, error) {
	if !report.IsValidUnit(req.Unit) {
		return nil, fmt.Errorf("%w: %q", report.ErrInvalidUnit, req.Unit)
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidDate, req.StartDate)
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	if req.EndDate != "" {
		end, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end %q", ErrInvalidDate, req.EndDate)
		}
	}
	end = endOfDay(end)

	cacheKey := fmt.Sprintf("report:%s:chart:%s:%s:%s",
		userUID, strings.ToLower(req.Unit), start.Format("2006-01-02"), end.Format("2006-01-02"))
	var cached []models.ReportRow
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read report from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	expenses, err := s.repo.ListAllExpenses(ctx, userUID)
	if err != nil {
		return nil, err
	}
	rows, err := report.SumByDateRange(expenses, req.Unit, start, end)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, rows, time.Hour); err != nil {
		s.log.Warn("failed to cache report", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return rows, nil
}

// invalidateReports сбрасывает все кешированные отчёты пользователя после
// любого изменения его записей: и по категориям, и по интервалам дат.
func (s *ExpenseService) invalidateReports(userUID string) {
	prefix := fmt.Sprintf("report:%s:", userUID)
	if err := s.cache.InvalidateByPrefix(prefix); err != nil {
		s.log.Warn("failed to invalidate report cache", slog.String("prefix", prefix), slog.Any("err", err))
	}
}

// endOfDay продлевает дату до 23:59:59 её календарного дня.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// CreateExpense вставляет новую запись расхода и возвращает её ID.
// Владелец записи всегда берётся из entry.UserUID, заданного вызывающей стороной.
func (s *Storage) CreateExpense(ctx context.Context, entry models.Expense) (string, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`INSERT INTO %s (user_uid, amount, ts, category, description)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`, s.expensesTable)
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.Amount, entry.Timestamp, entry.Category, entry.Description).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadExpense возвращает расход по ID в пределах записей пользователя userUID.
// Чужая запись неотличима от несуществующей: в обоих случаях ErrNotFound.
func (s *Storage) ReadExpense(ctx context.Context, id, userUID string) (*models.Expense, error) {
	const op = "storage.ReadExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT id, user_uid, amount, ts, category, description
			  FROM %s WHERE id = $1 AND user_uid = $2`, s.expensesTable)
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Expense
	if err := row.Scan(&result.ID, &result.UserUID, &result.Amount, &result.Timestamp,
		&result.Category, &result.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateExpense обновляет данные расхода по ID в пределах записей пользователя
// userUID и возвращает количество изменённых строк.
func (s *Storage) UpdateExpense(ctx context.Context, entry models.Expense, id, userUID string) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`UPDATE %s
			  SET amount = $1, ts = $2, category = $3, description = $4
			  WHERE id = $5 AND user_uid = $6`, s.expensesTable)
	result, err := s.DB.ExecContext(ctx, query,
		entry.Amount, entry.Timestamp, entry.Category, entry.Description, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveExpense удаляет расход по ID в пределах записей пользователя userUID
// и возвращает количество удалённых строк.
func (s *Storage) RemoveExpense(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_uid = $2`, s.expensesTable)
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListExpenses возвращает список расходов пользователя с пагинацией.
func (s *Storage) ListExpenses(ctx context.Context, userUID string, limit, offset int) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT id, user_uid, amount, ts, category, description
			  FROM %s
			  WHERE user_uid = $1
			  ORDER BY ts, id
			  LIMIT $2 OFFSET $3`, s.expensesTable)
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &item.Timestamp,
			&item.Category, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllExpenses возвращает все расходы пользователя без пагинации.
// Используется движком отчётов, которому нужен полный набор записей.
func (s *Storage) ListAllExpenses(ctx context.Context, userUID string) ([]*models.Expense, error) {
	const op = "storage.ListAllExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`SELECT id, user_uid, amount, ts, category, description
			  FROM %s
			  WHERE user_uid = $1
			  ORDER BY ts, id`, s.expensesTable)
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &item.Timestamp,
			&item.Category, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

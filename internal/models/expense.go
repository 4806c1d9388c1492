// Package models содержит доменные структуры, описывающие расход,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense представляет собой один расход пользователя,
// используемый в бизнес-логике и хранилище.
// Сумма хранится как decimal.Decimal, чтобы при агрегировании
// не накапливалась погрешность двоичных чисел с плавающей точкой.
type Expense struct {
	ID          string          `json:"id"`          // Уникальный идентификатор расхода
	UserUID     string          `json:"user_uid"`    // Идентификатор пользователя-владельца
	Amount      decimal.Decimal `json:"amount"`      // Сумма расхода (знак не ограничен)
	Timestamp   time.Time       `json:"timestamp"`   // Дата и время расхода
	Category    string          `json:"category"`    // Категория расхода (произвольная строка)
	Description string          `json:"description"` // Описание расхода
}

// DummyExpense используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Expense.
// Сумма и дата приходят строками, чтобы их можно было валидировать и парсить вручную.
type DummyExpense struct {
	Amount      string `json:"amount" validate:"required"`    // Сумма в десятичном виде, например "12.50"
	Timestamp   string `json:"timestamp" validate:"required"` // Дата и время в формате RFC3339
	Category    string `json:"category" validate:"required"`  // Категория расхода
	Description string `json:"description"`                   // Описание (опционально)
}

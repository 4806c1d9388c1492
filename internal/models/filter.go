// Package models содержит структуры данных, используемые для построения
// отчёта по интервалам дат.
package models

// DummyFilter используется для приёма параметров отчёта по интервалам
// из запроса до их валидации и преобразования. Даты приходят строками
// в формате 2006-01-02.
type DummyFilter struct {
	Unit      string `json:"unit" validate:"required"`                // Единица группировки: day, week, month или year
	StartDate string `json:"start_date" validate:"required"`          // Дата начала диапазона (включительно)
	EndDate   string `json:"end_date,omitempty" validate:"omitempty"` // Дата окончания (опционально, по умолчанию сегодня)
}

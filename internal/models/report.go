package models

import "github.com/shopspring/decimal"

// ReportRow представляет одну строку агрегированного отчёта:
// метка (категория или ключ интервала) и точная сумма расходов по ней.
// Отчёты не сохраняются в хранилище, а вычисляются по запросу.
type ReportRow struct {
	Label string          `json:"label"` // Категория или ключ интервала (например "2024-01-02")
	Total decimal.Decimal `json:"total"` // Сумма расходов по метке
}

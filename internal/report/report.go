// Package report реализует агрегирование расходов пользователя:
// суммы по категориям и суммы по календарным интервалам выбранного диапазона дат.
//
// Все функции пакета являются чистыми вычислениями над переданными данными:
// они не имеют побочных эффектов и безопасны для конкурентного вызова.
// Суммы считаются точной десятичной арифметикой (decimal), а не float,
// чтобы при сложении не накапливалась погрешность.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Единицы группировки для SumByDateRange.
const (
	UnitDay   = "day"
	UnitWeek  = "week"
	UnitMonth = "month"
	UnitYear  = "year"
)

// ErrInvalidUnit возвращается, если единица группировки не распознана.
// Проверка выполняется до какой-либо работы с данными.
var ErrInvalidUnit = errors.New("unknown time range unit")

// IsValidUnit сообщает, распознаётся ли единица группировки.
// Позволяет вызывающей стороне отклонить запрос до обращения к хранилищу.
func IsValidUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}

// SumByCategory группирует расходы по точному совпадению категории и считает
// сумму по каждой группе.
//
// Результат отсортирован по убыванию суммы; при равных суммах сохраняется
// порядок первого появления категории во входных данных.
// Ожидается, что вызывающая сторона уже ограничила записи одним пользователем.
func SumByCategory(expenses []*models.Expense) []models.ReportRow {
	totals := make(map[string]decimal.Decimal, len(expenses))
	order := make([]string, 0, len(expenses))

	for _, e := range expenses {
		if _, ok := totals[e.Category]; !ok {
			order = append(order, e.Category)
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	rows := make([]models.ReportRow, 0, len(order))
	for _, category := range order {
		rows = append(rows, models.ReportRow{Label: category, Total: totals[category]})
	}
	// Стабильная сортировка: категории с равными суммами остаются в порядке появления.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// SumByDateRange считает суммы расходов по интервалам единицы unit
// (day, week, month или year, без учёта регистра) в диапазоне [start, end] включительно.
//
// Результат содержит строку для каждого интервала диапазона в хронологическом
// порядке, включая интервалы с нулевой суммой — график по такому отчёту
// не имеет пропусков по оси X. Недели выравниваются не по календарю,
// а по дате начала отчёта: ключ недели — start + 7*floor(дней от start / 7).
//
// Если start позже end, возвращается пустой результат без ошибки.
func SumByDateRange(expenses []*models.Expense, unit string, start, end time.Time) ([]models.ReportRow, error) {
	const op = "report.SumByDateRange"

	keyOf, first, step, err := bucketer(unit, start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Пустой диапазон не перечисляет ни одного интервала. Проверка по исходному
	// start, а не по first: для месяцев и лет first нормализуется к границе
	// интервала и может оказаться раньше end даже при start позже end.
	if dateOf(start).After(end) {
		return []models.ReportRow{}, nil
	}

	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	// Перечисляем все ключи интервалов диапазона той же функцией,
	// которой затем размечаются записи.
	for cur := first; !cur.After(end); cur = step(cur) {
		key := keyOf(cur)
		if _, ok := totals[key]; !ok {
			order = append(order, key)
			totals[key] = decimal.Zero
		}
	}

	for _, e := range expenses {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		key := keyOf(e.Timestamp)
		if _, ok := totals[key]; !ok {
			continue
		}
		totals[key] = totals[key].Add(e.Amount)
	}

	rows := make([]models.ReportRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, models.ReportRow{Label: key, Total: totals[key]})
	}
	return rows, nil
}

// bucketer возвращает для единицы unit функцию вычисления ключа интервала,
// начальную точку перечисления и функцию шага на один интервал.
//
// Ключ выводится из показаний стенных часов метки времени в её собственной
// зоне — это важно для записей около полуночи. Начальная точка перечисления
// нормализуется к границе интервала (начало дня, месяца или года), чтобы
// каждая запись диапазона гарантированно попадала в перечисленный интервал.
func bucketer(unit string, start time.Time) (func(time.Time) string, time.Time, func(time.Time) time.Time, error) {
	startDay := dateOf(start)

	switch strings.ToLower(unit) {
	case UnitDay:
		key := func(t time.Time) string { return t.Format("2006-01-02") }
		step := func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		return key, startDay, step, nil
	case UnitWeek:
		// Недели привязаны к дате начала отчёта, а не к календарным границам.
		key := func(t time.Time) string {
			weeks := daysBetween(startDay, t) / 7
			return startDay.AddDate(0, 0, 7*weeks).Format("2006-01-02")
		}
		step := func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
		return key, startDay, step, nil
	case UnitMonth:
		key := func(t time.Time) string { return t.Format("2006-01") }
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		step := func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		return key, first, step, nil
	case UnitYear:
		key := func(t time.Time) string { return t.Format("2006") }
		first := time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, start.Location())
		step := func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
		return key, first, step, nil
	default:
		return nil, time.Time{}, nil, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
}

// dateOf обрезает метку времени до начала её календарного дня.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween считает число полных календарных дней между датами a и b,
// каждая из которых берётся по своим стенным часам.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

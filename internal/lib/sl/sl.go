// Package sl дополняет стандартный slog атрибутами, общими для всего сервиса.
package sl

import "log/slog"

// Err оборачивает ошибку в атрибут с ключом "error", чтобы все записи лога
// выводили текст ошибки в одном и том же поле:
//
//	log.Error("failed to create expense", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

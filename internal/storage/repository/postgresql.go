// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями и расходами. Предоставляет методы
// создания, чтения, обновления и удаления записей двух видов:
// User и Expense. Имена таблиц задаются конфигурацией процесса.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запись не существует либо принадлежит
// другому пользователю — для операций чтения эти случаи неразличимы.
var ErrNotFound = errors.New("record not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и расходами.
type Storage struct {
	DB            *sql.DB
	usersTable    string
	expensesTable string
}

// New создаёт подключение к PostgreSQL с заданными именами таблиц.
func New(storageConnectionString, usersTable, expensesTable string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB:            db,
		usersTable:    usersTable,
		expensesTable: expensesTable,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = $1
    )`, storage.expensesTable).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table %s missing or query error: %w", storage.expensesTable, err)
	}
	return nil
}

// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи и хэш пароля.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное, с учётом регистра)
	PasswordHash string // Хэш пароля пользователя, в открытом виде пароль нигде не хранится
	FirstName    string // Имя для отображения
	LastName     string // Фамилия для отображения
}

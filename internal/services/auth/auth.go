// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/password"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage/repository"
)

// Ошибки бизнес-уровня аутентификации. Обработчики отображают их
// в статусы 409, 404 и 401 соответственно.
var (
	// ErrUserExists — пользователь с таким username уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound — пользователь с таким username не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — пароль не подошёл к сохранённому хэшу.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу выпускает
// токен, чтобы клиент был аутентифицирован без отдельного входа.
//
// Возвращает ErrUserExists, если username уже занят (сравнение с учётом регистра).
func (s *AuthService) Register(ctx context.Context, username, rawPassword, firstName, lastName string) (token, uid string, err error) {
	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", "", err
	}
	if existing != nil {
		return "", "", fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", "", err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
	}
	uid, err = s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", "", err
	}
	user.UID = uid

	token, err = s.IssueToken(&user)
	if err != nil {
		return "", "", err
	}
	return token, uid, nil
}

// Login проверяет пароль пользователя и выпускает JWT.
//
// Неизвестный username и неверный пароль различаются намеренно:
// первый даёт ErrUserNotFound, второй — ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user)
}

// IssueToken выпускает подписанный токен для уже сохранённого пользователя.
// Пользователь без UID токен получить не может.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return s.jwtMaker.GenerateToken(user.Username, user.UID)
}

// ValidateToken проверяет JWT и возвращает идентичность пользователя из его claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		UID:      claims.UserUID,
		Username: claims.Subject,
	}, nil
}

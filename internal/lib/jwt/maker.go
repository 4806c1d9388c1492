// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки JWT токенов с username и идентификатором пользователя.
// MakerImpl — конкретная реализация с использованием симметричного секретного ключа,
// издателя, аудитории и срока жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Методы позволяют создавать токен с указанием username и идентификатора пользователя,
// а также разбирать токен и извлекать из него кастомные данные.
type Maker interface {
	// GenerateToken создаёт подписанный токен для пользователя с данным username и userUID.
	GenerateToken(username, userUID string) (string, error)
	// ParseToken возвращает *CustomClaims с username и userUID
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	issuer    string        // Издатель, проставляется в iss и строго проверяется при парсинге.
	audience  string        // Аудитория, проставляется в aud и строго проверяется при парсинге.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа,
// издателя, аудитории и TTL.
func NewJWTMaker(secretKey, issuer, audience string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		tokenTTL:  ttl,
	}
}

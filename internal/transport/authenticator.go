package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/crmsync/internal/crypto"
)

// Authenticator выдает токен для исходящих запросов и проверяет входящие
type Authenticator interface {
	// Token возвращает токен для исходящего payload
	Token(ctx context.Context) (string, error)

	// Verify проверяет полученный токен. Ошибка оборачивает ErrUnauthorized.
	Verify(token string) error
}

// StaticAuthenticator использует один общий токен в обе стороны
type StaticAuthenticator struct {
	token string
}

// NewStaticAuthenticator создает аутентификатор для заданного общего токена
func NewStaticAuthenticator(token string) (*StaticAuthenticator, error) {
	if len(token) == 0 || len(token) > MaxTokenLength {
		return nil, fmt.Errorf("%w: %d", ErrTokenLength, len(token))
	}
	return &StaticAuthenticator{token: token}, nil
}

// NewGroupAuthenticator выводит общий токен из идентификатора группы синхронизации
func NewGroupAuthenticator(group string) (*StaticAuthenticator, error) {
	token, err := crypto.DeriveToken(group)
	if err != nil {
		return nil, fmt.Errorf("failed to derive group token: %w", err)
	}
	return NewStaticAuthenticator(token)
}

func (a *StaticAuthenticator) Token(context.Context) (string, error) {
	return a.token, nil
}

func (a *StaticAuthenticator) Verify(token string) error {
	if err := crypto.VerifyToken(token, a.token); err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}

// jwtIssuer - issuer токенов синхронизации
const jwtIssuer = "crmsync"

// JWTAuthenticator выдает короткоживущие HS256 токены, подписанные ключом из
// общей парольной фразы. В subject пишется id устройства-отправителя.
type JWTAuthenticator struct {
	now      func() time.Time
	deviceID string
	key      []byte
	ttl      time.Duration
}

// NewJWTAuthenticator выводит ключ подписи из парольной фразы и группы
func NewJWTAuthenticator(passphrase, group, deviceID string, ttl time.Duration) (*JWTAuthenticator, error) {
	key, err := crypto.DeriveSyncKey(passphrase, crypto.GroupSalt(group))
	if err != nil {
		return nil, fmt.Errorf("failed to derive sync key: %w", err)
	}
	return NewJWTAuthenticatorWithKey(key, deviceID, ttl), nil
}

// NewJWTAuthenticatorWithKey создает аутентификатор для уже выведенного ключа
func NewJWTAuthenticatorWithKey(key []byte, deviceID string, ttl time.Duration) *JWTAuthenticator {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &JWTAuthenticator{
		now:      time.Now,
		deviceID: deviceID,
		key:      key,
		ttl:      ttl,
	}
}

// Token создает новый подписанный токен
func (a *JWTAuthenticator) Token(context.Context) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   a.deviceID,
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    jwtIssuer,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	if len(token) > MaxTokenLength {
		return "", fmt.Errorf("%w: signed token is %d bytes", ErrTokenLength, len(token))
	}

	return token, nil
}

// Verify валидирует подпись, issuer и срок действия токена
func (a *JWTAuthenticator) Verify(token string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.key, nil
	},
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}

// Package crypto derives the shared secrets devices use to authenticate sync.
package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// tokenContext отделяет токены синхронизации от других хешей той же строки
const tokenContext = "crmsync/sync-token/"

// DeriveToken хеширует идентичность группы синхронизации с использованием SHA256.
// Все устройства одной группы получают одинаковый токен.
func DeriveToken(identity string) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("identity cannot be empty")
	}

	hash := sha256.Sum256([]byte(tokenContext + identity))

	// Возвращаем hex-encoded строку
	return hex.EncodeToString(hash[:]), nil
}

// VerifyToken сравнивает токены за постоянное время
func VerifyToken(got, want string) error {
	if got == "" || want == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return fmt.Errorf("invalid token")
	}
	return nil
}

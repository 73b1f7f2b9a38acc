package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSessionToken возвращает непредсказуемый URL-safe токен сессии.
// 32 байта энтропии из crypto/rand.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hrcell_backend/internal/models"
)

// TokenTTL - фиксированное время жизни bearer-токена
const TokenTTL = 24 * time.Hour

// Claims - полезная нагрузка bearer-токена.
// Для super_admin CompanyID всегда пустой.
type Claims struct {
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	CompanyID string      `json:"company_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет подписанные bearer-токены.
// Секрет - конфигурация деплоя, инжектится при старте.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer создает TokenIssuer с часами по умолчанию
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// NewTokenIssuerWithClock - конструктор с инжектируемыми часами (для тестов)
func NewTokenIssuerWithClock(secret string, now func() time.Time) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: now}
}

// Generate выпускает токен на 24 часа от момента выпуска
func (i *TokenIssuer) Generate(userID string, role models.Role, companyID string) (string, error) {
	if role == models.RoleSuperAdmin {
		// super_admin глобален, company_id в его токене не бывает
		companyID = ""
	}

	now := i.now()
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse проверяет подпись и срок действия, возвращает claims.
// Просроченный или неподписанный токен - ошибка.
func (i *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

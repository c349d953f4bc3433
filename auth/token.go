// auth/token.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LilVoxy/market_chat/chat"
)

// CustomClaims описывает данные, которые хранятся внутри JWT
type CustomClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTVerifier проверяет подпись и срок действия токенов, выданных
// внешним сервисом аутентификации с тем же секретом
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier создает верификатор с указанным секретом
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// UserIDFromToken проверяет токен и возвращает ID пользователя из claims
func (v *JWTVerifier) UserIDFromToken(tokenString string) (int, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", chat.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID <= 0 {
		return 0, chat.ErrUnauthenticated
	}
	return claims.UserID, nil
}

// GenerateToken выписывает подписанный JWT для пользователя.
// Используется тестами и служебными утилитами; на проде токены
// выдает внешний сервис аутентификации.
func GenerateToken(secret string, userID int, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "market_chat",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// BearerToken извлекает учетные данные из строки вида "<схема> <токен>".
// Верификатору передается только часть после первого пробела.
func BearerToken(credential string) (string, error) {
	parts := strings.SplitN(credential, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: ожидается формат \"<схема> <токен>\"", chat.ErrBadRequest)
	}
	return parts[1], nil
}

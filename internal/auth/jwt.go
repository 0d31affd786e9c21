package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret string

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	accessTokenLifetime  = time.Hour * 24
	refreshTokenLifetime = time.Hour * 168
)

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

func generateToken(userID uint, username, tokenType string, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": tokenType,
		"exp":        time.Now().Add(lifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GenerateTokenPair returns an access token and a longer-lived refresh token.
func GenerateTokenPair(userID uint, username string) (string, string, error) {
	access, err := generateToken(userID, username, TokenTypeAccess, accessTokenLifetime)

	if err != nil {
		return "", "", err
	}

	refresh, err := generateToken(userID, username, TokenTypeRefresh, refreshTokenLifetime)

	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func GenerateAccessToken(userID uint, username string) (string, error) {
	return generateToken(userID, username, TokenTypeAccess, accessTokenLifetime)
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	return token, nil
}

// VerifyJWTOfType verifies the token and checks its token_type claim, so a
// refresh token cannot be replayed as an access token or the other way round.
func VerifyJWTOfType(tokenString, tokenType string) (jwt.MapClaims, error) {
	token, err := VerifyJWT(tokenString)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}

	if claimedType, _ := claims["token_type"].(string); claimedType != tokenType {
		return nil, fmt.Errorf("Invalid token type")
	}

	return claims, nil
}

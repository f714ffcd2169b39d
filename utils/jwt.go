package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/neonglow/neonglow-backend-go/config"
	"github.com/neonglow/neonglow-backend-go/models"
)

// jwtSecret reads the signing secret from the environment. Presence is
// enforced once at startup; request paths must never exit the process.
func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", ""))
}

type AdminClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.StandardClaims
}

// IsAdminToken reports whether the claims mark this as an admin-issued token.
// Tokens signed with the same secret for plain users must not pass.
func (c *AdminClaims) IsAdminToken() bool {
	return c.IsAdmin && c.Role == "admin" && c.Type == "admin"
}

func GenerateAdminJWT(admin models.Admin) (string, error) {
	claims := &AdminClaims{
		ID:       admin.ID.Hex(),
		Username: admin.Username,
		Email:    admin.Email,
		IsAdmin:  true,
		Role:     "admin",
		Type:     "admin",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ValidateAdminJWT(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return claims, nil
}

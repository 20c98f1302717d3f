// Package jwt firma y valida los tokens de sesión (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrIncompleteToken el token es válido pero no identifica usuario y empresa.
var ErrIncompleteToken = errors.New("jwt: token sin user_id o company_id")

// Identity quién hace la petición. Role viaja en el token para que el middleware
// autorice sin consultar la base.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string // owner, admin, manager, employee
}

type claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token para id que vence en ttl.
func Generate(secret, issuer string, id Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Role:      id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve la identidad.
// Un token sin rol se acepta: RequireRole decide qué hacer con él.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, err
	}
	if c.UserID == "" || c.CompanyID == "" {
		return Identity{}, ErrIncompleteToken
	}
	return Identity{UserID: c.UserID, CompanyID: c.CompanyID, Role: c.Role}, nil
}

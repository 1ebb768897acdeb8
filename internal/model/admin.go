package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims - клеймы токена доступа оператора
type AdminClaims struct {
	jwt.RegisteredClaims
}

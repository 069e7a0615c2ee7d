package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role identifies the actor classes the storefront distinguishes.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
)

// IsValid reports whether the role is one the storefront recognizes.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleEmployee:
		return true
	}
	return false
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Role   Role
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients. The role
// claim is the only trusted source for employee-view gating; client-side
// flags are never consulted.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
	jwt.RegisteredClaims
}

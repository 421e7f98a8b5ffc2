package service

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the decoded payload of a bearer token.
type Claims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService validates signed bearer tokens. Issuing tokens is not part of this service.
type TokenService interface {
	// ValidateToken verifies signature and expiry and returns the decoded claims.
	// Expired tokens fail with ErrTokenExpired whatever the state of the signature.
	ValidateToken(tokenString string) (*Claims, error)
}

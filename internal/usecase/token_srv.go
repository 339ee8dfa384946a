package usecase

import (
	"fmt"
	"time"

	"electrifind/internal/data/entity"
	"electrifind/pkg/apperr"
	"electrifind/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims embeds the user role next to the standard claims. The
// subject carries the user ID.
type TokenClaims struct {
	Role entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and verifies stateless session tokens. There is no
// server-side session store and no revocation: a token stays valid until
// its natural expiry.
type TokenService interface {
	Issue(userID uuid.UUID, role entity.UserRole) (string, time.Time, error)
	Verify(token string) (*TokenClaims, error)
}

type tokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(config utils.JWTConfig) TokenService {
	return &tokenService{
		secret: []byte(config.Secret),
		expiry: time.Duration(config.ExpiryHours) * time.Hour,
	}
}

func (ts *tokenService) Issue(userID uuid.UUID, role entity.UserRole) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.expiry)

	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify collapses every failure (malformed, expired, bad signature) into
// one uniform Unauthorized error so callers cannot leak the reason.
func (ts *tokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "Not authorized to access this route", err)
	}

	return claims, nil
}

package usecase

import (
	"testing"

	"electrifind/internal/data/entity"
	"electrifind/pkg/apperr"
	"electrifind/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(expiryHours int) TokenService {
	return NewTokenService(utils.JWTConfig{
		Secret:      "test-secret",
		ExpiryHours: expiryHours,
	})
}

func TestTokenService_IssueVerifyRoundtrip(t *testing.T) {
	tokens := newTestTokenService(168)
	userID := uuid.New()

	signed, expiresAt, err := tokens.Issue(userID, entity.RoleShopkeeper)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.False(t, expiresAt.IsZero())

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)

	gotID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, entity.RoleShopkeeper, claims.Role)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	// negative expiry issues a token that is already past its deadline
	tokens := newTestTokenService(-1)

	signed, _, err := tokens.Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := newTestTokenService(168)
	verifier := NewTokenService(utils.JWTConfig{Secret: "other-secret", ExpiryHours: 168})

	signed, _, err := issuer.Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	tokens := newTestTokenService(168)

	for _, garbage := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := tokens.Verify(garbage)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		// uniform message regardless of failure reason
		assert.Equal(t, "Not authorized to access this route", apperr.MessageOf(err))
	}
}

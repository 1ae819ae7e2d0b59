package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubevents/internal/domain"
)

func TestJWTTokens_IssueAndVerify(t *testing.T) {
	secret := "test-secret"
	issuer, verifier := NewJWTTokens(secret)

	identity := &domain.Identity{
		UserID:         "user-123",
		Role:           domain.RoleClubAdmin,
		OrganizationID: "org-1",
	}
	token, err := issuer.Issue(identity, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, domain.RoleClubAdmin, got.Role)
	assert.Equal(t, "org-1", got.OrganizationID)
}

func TestJWTTokens_VerifyRejectsBadSecret(t *testing.T) {
	issuer, _ := NewJWTTokens("secret-a")
	_, verifier := NewJWTTokens("secret-b")

	token, err := issuer.Issue(&domain.Identity{UserID: "u1", Role: domain.RoleStudent}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestJWTTokens_VerifyRejectsExpired(t *testing.T) {
	issuer, verifier := NewJWTTokens("secret")

	token, err := issuer.Issue(&domain.Identity{UserID: "u1", Role: domain.RoleStudent}, -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestJWTTokens_VerifyRejectsWrongAlgorithm(t *testing.T) {
	_, verifier := NewJWTTokens("secret")

	// Unsigned token with alg "none".
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(unsigned)
	require.Error(t, err)
}

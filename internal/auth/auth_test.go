package auth

import (
	"context"
	"testing"
	"time"

	"campusEvents/internal/models/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	id := uuid.New()

	token, err := tokens.Issue(id)
	require.NoError(t, err)

	got, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokensRejects(t *testing.T) {
	id := uuid.New()
	issuer := NewTokens("secret", time.Hour)

	expired := NewTokens("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(id)
	require.NoError(t, err)

	otherKey, err := NewTokens("other", time.Hour).Issue(id)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: id.String()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":     "not-a-token",
		"expired":     expiredToken,
		"wrong key":   otherKey,
		"alg none":    none,
		"missing uid": noUID,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Parse(token)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestSubjectFallback(t *testing.T) {
	id := uuid.New()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := NewTokens("secret", time.Hour).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(string(hash), "s3cret"))
	assert.ErrorIs(t, CheckPassword(string(hash), "wrong"), domain.ErrUnauthenticated)
	assert.Error(t, CheckPassword("not-a-hash", "s3cret"))
}

func TestBootstrapAdminIDIsStable(t *testing.T) {
	assert.Equal(t, BootstrapAdminID("root"), BootstrapAdminID("root"))
	assert.NotEqual(t, BootstrapAdminID("root"), BootstrapAdminID("admin"))
}

func TestContextUserID(t *testing.T) {
	_, err := UserID(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	id := uuid.New()
	got, err := UserID(WithUserID(context.Background(), id))
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

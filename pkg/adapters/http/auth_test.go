package http

import (
	"testing"
	"time"

	"github.com/aretw0/carebot/internal/text"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSign(t *testing.T, claims map[string]any) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(claims)).SignedString(testSecret)
	require.NoError(t, err)
	return tok
}

func textSanitizer(max int) *text.Sanitizer {
	return text.NewSanitizer(max)
}

func TestIssueToken(t *testing.T) {
	tok, err := IssueToken(testSecret, "user-7", time.Minute)
	require.NoError(t, err)

	uid, err := NewAuthenticator(testSecret).Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-7", uid)

	_, err = IssueToken(testSecret, "", time.Minute)
	assert.ErrorIs(t, err, ErrMissingUID)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewAuthenticator(testSecret).Verify(tok)
	assert.Error(t, err)
}

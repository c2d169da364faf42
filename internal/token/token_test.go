package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret")
	tok, err := svc.Issue("user-123")
	require.NoError(t, err)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewService("secret-a").Issue("user-123")
	require.NoError(t, err)

	_, err = NewService("secret-b").Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret")
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewService("test-secret")
	issued := time.Now()
	svc.now = func() time.Time { return issued }
	tok, err := svc.Issue("user-123")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(Expiry + time.Minute) }
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

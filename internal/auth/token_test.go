package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_IssueAndVerify(t *testing.T) {
	sessions := NewSessions([]byte("test-secret"), time.Hour)

	token, err := sessions.Issue("NIM-A1B2C3")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	publicID, err := sessions.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "NIM-A1B2C3", publicID)
}

func TestSessions_Verify_WrongSecret(t *testing.T) {
	sessions := NewSessions([]byte("test-secret"), time.Hour)
	other := NewSessions([]byte("other-secret"), time.Hour)

	token, err := sessions.Issue("NIM-A1B2C3")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessions_Verify_Expired(t *testing.T) {
	sessions := NewSessions([]byte("test-secret"), -time.Minute)

	token, err := sessions.Issue("NIM-A1B2C3")
	require.NoError(t, err)

	_, err = sessions.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestSessions_Verify_Garbage(t *testing.T) {
	sessions := NewSessions([]byte("test-secret"), time.Hour)

	_, err := sessions.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

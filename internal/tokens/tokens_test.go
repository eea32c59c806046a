package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_IssueAndParse(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("test-jwt-secret"), 15*time.Minute)

	token, err := signer.Issue("ann@x.com", []string{"USER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "ann@x.com", claims.Subject)
	assert.Equal(t, []string{"USER"}, claims.Roles)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestSigner_Parse_Expired(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("test-jwt-secret"), -time.Minute)

	token, err := signer.Issue("ann@x.com", []string{"USER"})
	require.NoError(t, err)

	claims, err := signer.Parse(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestSigner_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("test-jwt-secret"), 15*time.Minute)
	other := NewSigner([]byte("another-secret"), 15*time.Minute)

	token, err := signer.Issue("ann@x.com", []string{"USER"})
	require.NoError(t, err)

	claims, err := other.Parse(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_Parse_Garbage(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("test-jwt-secret"), 15*time.Minute)

	claims, err := signer.Parse("not-a-jwt")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

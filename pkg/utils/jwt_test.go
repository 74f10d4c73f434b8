package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := newTestTokenManager()
	userID := uuid.New()

	issued, err := m.Issue(userID, "staff", AccessToken)
	require.NoError(t, err)

	claims, err := m.Parse(issued.Token, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, issued.JTI.String(), claims.ID)
}

func TestTokenManager_RejectsWrongType(t *testing.T) {
	m := newTestTokenManager()

	issued, err := m.Issue(uuid.New(), "customer", RefreshToken)
	require.NoError(t, err)

	_, err = m.Parse(issued.Token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := newTestTokenManager()
	issuedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	issued, err := m.Issue(uuid.New(), "customer", AccessToken)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), issued.ExpiresAt)

	m.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = m.Parse(issued.Token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	other := NewTokenManager(JWTConfig{Secret: "other", AccessTTL: time.Hour})
	issued, err := other.Issue(uuid.New(), "staff", AccessToken)
	require.NoError(t, err)

	_, err = newTestTokenManager().Parse(issued.Token, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

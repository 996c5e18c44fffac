package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", 30*time.Minute)
	userID := uuid.New()

	token, err := m.Generate(userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)

	parsedID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestValidateWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 30*time.Minute)
	token, err := m.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	other := NewManager("secret-b", 30*time.Minute)
	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.Generate(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Minute)
	_, err := m.Validate("not.a.token")
	assert.Error(t, err)
}

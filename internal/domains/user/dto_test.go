package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Normalize(t *testing.T) {
	req := RegisterRequest{Username: " Reader_1 ", Email: " Reader@Example.COM "}
	req.Normalize()
	assert.Equal(t, "reader_1", req.Username)
	assert.Equal(t, "reader@example.com", req.Email)
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Username: "reader_1", Email: "reader@example.com", Password: "Sup3rSecret"}
	require.NoError(t, valid.Validate())

	t.Run("username too short", func(t *testing.T) {
		req := valid
		req.Username = "ab"
		require.Error(t, req.Validate())
	})

	t.Run("username with invalid characters", func(t *testing.T) {
		req := valid
		req.Username = "bad name!"
		require.Error(t, req.Validate())
	})

	t.Run("invalid email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		require.Error(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "Ab1"
		require.Error(t, req.Validate())
	})

	t.Run("password without digit", func(t *testing.T) {
		req := valid
		req.Password = "NoDigitsHere"
		require.Error(t, req.Validate())
	})

	t.Run("password without upper case", func(t *testing.T) {
		req := valid
		req.Password = "alllower123"
		require.Error(t, req.Validate())
	})
}

func TestUpdateProfileRequest_Normalize(t *testing.T) {
	email := " New@Example.COM "
	req := UpdateProfileRequest{Email: &email}
	req.Normalize()
	require.NotNil(t, req.Email)
	assert.Equal(t, "new@example.com", *req.Email)
}

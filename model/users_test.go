package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_AuthenticatePassword(t *testing.T) {
	t.Parallel()

	hashed, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hashed)
	assert.Len(t, hashed, 60)

	u := &User{Password: hashed}
	assert.NoError(t, u.AuthenticatePassword("correct horse battery"))
	assert.ErrorIs(t, u.AuthenticatePassword("wrong password"), ErrInvalidPassword)
	assert.ErrorIs(t, (&User{}).AuthenticatePassword(""), ErrInvalidPassword)
}

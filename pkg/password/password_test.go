package password_test

import (
	"testing"

	"github.com/chirp-social/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := password.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, password.Check("s3cret-password", hash))
	assert.False(t, password.Check("wrong-password", hash))
	assert.False(t, password.Check("s3cret-password", "not-a-hash"))
}

func TestHashesAreSalted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)
	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, password.Check("same-password", first))
	assert.True(t, password.Check("same-password", second))
}

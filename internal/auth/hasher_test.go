package auth_test

import (
	"testing"

	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)

	hash, err := hasher.Hash("Correct1!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Correct1!", hash)

	tests := []struct {
		name     string
		password string
		digest   string
		want     bool
	}{
		{
			name:     "matching password",
			password: "Correct1!",
			digest:   hash,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "Wrong1!",
			digest:   hash,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			digest:   hash,
			want:     false,
		},
		{
			name:     "malformed digest",
			password: "Correct1!",
			digest:   "not-a-bcrypt-digest",
			want:     false,
		},
		{
			name:     "empty digest",
			password: "Correct1!",
			digest:   "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasher.Verify(tt.password, tt.digest))
		})
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := auth.NewBcryptHasher(4)

	first, err := hasher.Hash("Same1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Same1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("Same1!", first))
	assert.True(t, hasher.Verify("Same1!", second))
}

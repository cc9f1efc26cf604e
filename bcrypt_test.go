package manutauth_test

import (
	"testing"

	manutauth "github.com/manutapi/go-manut-auth"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := manutauth.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			err = manutauth.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := manutauth.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "not-a-bcrypt-hash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manutauth.ComparePasswordAndHash(tt.password, tt.hash)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "testPassword123!"
	hash, err := manutauth.HashPassword(password)
	assert.NoError(t, err)

	assert.True(t, manutauth.VerifyPassword(password, hash))
	assert.False(t, manutauth.VerifyPassword("wrongPassword", hash))
	assert.False(t, manutauth.VerifyPassword(password, "garbage"))
	assert.False(t, manutauth.VerifyPassword("", hash))
}

func TestRandomPasswordHash(t *testing.T) {
	hash := manutauth.RandomPasswordHash()
	assert.NotEmpty(t, hash)

	// The fallback hash must never verify against any realistic input.
	assert.False(t, manutauth.VerifyPassword("password", hash))
	assert.NotEqual(t, hash, manutauth.RandomPasswordHash())
}

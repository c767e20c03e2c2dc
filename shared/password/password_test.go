package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariachi/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "regular", plain: "serenata-2024"},
		{name: "unicode", plain: "contraseña123"},
		{name: "exactly max length", plain: strings.Repeat("a", password.MaxLength)},
		{name: "empty", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", plain: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.plain)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.plain, hash)
			assert.NoError(t, password.Verify(tt.plain, hash))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("serenata-2024")
	require.NoError(t, err)

	second, err := password.Hash("serenata-2024")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("serenata-2024")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
		anyErr  bool
	}{
		{name: "match", plain: "serenata-2024", hash: hash},
		{name: "mismatch", plain: "serenata-2025", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "case sensitive", plain: "SERENATA-2024", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", plain: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "serenata-2024", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", plain: "serenata-2024", hash: "not-a-bcrypt-hash", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

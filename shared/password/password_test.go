package password_test

import (
	"fleetdesk/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hash of "password", the bootstrap superadmin seeded by the staff migration.
const seededHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "valid password", password: "s3cure-Pass"},
		{name: "exactly 72 bytes", password: strings.Repeat("a", 72)},
		{name: "empty password", password: "", expectedErr: password.ErrEmptyPassword},
		{name: "longer than bcrypt accepts", password: strings.Repeat("a", 73), expectedErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
	}{
		{name: "seeded superadmin", password: "password", hash: seededHash},
		{name: "wrong password", password: "Password", hash: seededHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: seededHash, expectedErr: password.ErrInvalidPassword},
		{name: "missing hash", password: "password", hash: "", expectedErr: password.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	err := password.Verify("password", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}

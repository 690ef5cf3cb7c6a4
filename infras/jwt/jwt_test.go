package jwt_test

import (
	"context"
	"fleetdesk/config"
	"fleetdesk/infras/jwt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "fleetdesk"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	service := newService(15)

	pair, err := service.GenerateTokenPair(ctx, "staff-1", "ops@fleetdesk.local", "manager")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := service.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := service.ValidateToken(ctx, pair.RefreshToken, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := service.ValidateToken(ctx, pair.AccessToken+"x", jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestExpiredToken(t *testing.T) {
	ctx := context.Background()
	service := newService(-1)

	pair, err := service.GenerateTokenPair(ctx, "staff-1", "ops@fleetdesk.local", "admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)

	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	service := newService(15)

	pair, err := service.GenerateTokenPair(ctx, "staff-2", "desk@fleetdesk.local", "admin")
	require.NoError(t, err)

	refreshed, err := service.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := service.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "staff-2", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = service.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestForeignIssuer(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.App.Name = "other-app"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	pair, err := jwt.New(cfg).GenerateTokenPair(ctx, "staff-1", "ops@fleetdesk.local", "admin")
	require.NoError(t, err)

	_, err = newService(15).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)

	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		token   string
		wantErr bool
	}{
		{header: "Bearer abc.def", token: "abc.def"},
		{header: "bearer  abc.def ", token: "abc.def"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer ", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}

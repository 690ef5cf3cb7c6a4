package dto

import (
	"fleetdesk/infras/jwt"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the token pair as handed to staff clients.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	t.AccessToken = pair.AccessToken
	t.RefreshToken = pair.RefreshToken
	t.TokenType = pair.TokenType
	t.ExpiresIn = pair.ExpiresIn
}

// LoginResponse also carries the role so the back-office UI can hide
// screens the staff member cannot use.
type LoginResponse struct {
	TokenResponse
	Role string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(pair *jwt.TokenPair, role string) {
	l.TokenResponse.FromTokenPair(pair)
	l.Role = role
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse = TokenResponse

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// SessionResponse describes the caller as the access token identifies them.
type SessionResponse struct {
	StaffID string `json:"staff_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	TokenID string `json:"token_id,omitempty"`
}

// Column updates on the staff table.
type (
	lastLoginUpdate struct {
		LastLogin time.Time `db:"last_login"`
	}

	passwordUpdate struct {
		Password string `db:"password"`
	}
)

func NewLastLoginUpdate(at time.Time) any {
	return lastLoginUpdate{LastLogin: at}
}

func NewPasswordUpdate(hashed string) any {
	return passwordUpdate{Password: hashed}
}

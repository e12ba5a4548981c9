package usecase

import (
	authdomain "kanflow-backend/internal/auth/domain"
	authdto "kanflow-backend/internal/auth/dto"
)

// Mailer sends the transactional mails the auth flows need.
type Mailer interface {
	SendVerificationCode(to, code string) error
	SendPasswordReset(to, link string) error
}

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	// Register creates an unverified account and emails an OTP code
	Register(req *authdto.RegisterRequest) error

	// VerifyEmail consumes the OTP code and returns a token pair
	VerifyEmail(req *authdto.VerifyEmailRequest) (*authdto.TokenResponse, error)

	// Login returns a token pair for a verified account
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// RefreshToken rotates an access token from a stored refresh token
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)

	// Logout invalidates the refresh token
	Logout(refreshToken string) error

	// RequestPasswordReset emails a deep link carrying a reset token;
	// it succeeds silently for unknown addresses
	RequestPasswordReset(email string) error

	// ResetPassword consumes the reset token and sets the new password
	ResetPassword(token, newPassword string) error

	// ValidateToken resolves a bearer token to its user
	ValidateToken(token string) (*authdomain.User, error)
}

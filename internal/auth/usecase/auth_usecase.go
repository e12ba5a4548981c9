package usecase

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	authdomain "kanflow-backend/internal/auth/domain"
	authdto "kanflow-backend/internal/auth/dto"
	"kanflow-backend/internal/auth/repository"
	"kanflow-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	otpExpiry   = 15 * time.Minute
	resetExpiry = 1 * time.Hour
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, mailer Mailer, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		config:   cfg,
	}
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) error {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("email already registered")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &authdomain.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
		Verified: false,
	}
	if err := u.userRepo.Create(user); err != nil {
		return err
	}

	return u.sendVerificationCode(user)
}

func (u *authUsecase) sendVerificationCode(user *authdomain.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	// Only the latest code is valid
	if err := u.userRepo.DeleteOneTimeCodes(user.ID, authdomain.CodePurposeVerify); err != nil {
		return err
	}
	record := &authdomain.OneTimeCode{
		UserID:    user.ID,
		Code:      code,
		Purpose:   authdomain.CodePurposeVerify,
		ExpiresAt: time.Now().Add(otpExpiry),
	}
	if err := u.userRepo.SaveOneTimeCode(record); err != nil {
		return err
	}

	if err := u.mailer.SendVerificationCode(user.Email, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (u *authUsecase) VerifyEmail(req *authdto.VerifyEmailRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid code")
	}

	record, err := u.userRepo.FindOneTimeCode(req.Code, authdomain.CodePurposeVerify)
	if err != nil {
		return nil, err
	}
	if record == nil || record.UserID != user.ID || record.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("invalid or expired code")
	}

	user.Verified = true
	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	if err := u.userRepo.DeleteOneTimeCodes(user.ID, authdomain.CodePurposeVerify); err != nil {
		log.Printf("[Auth] Failed to clean up codes for %s: %v", user.ID, err)
	}

	return u.generateTokens(user)
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("invalid email or password")
	}
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, errors.New("invalid email or password")
	}
	if !user.Verified {
		return nil, errors.New("email not verified")
	}

	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	storedToken, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if storedToken == nil || storedToken.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("refresh token expired")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return u.generateTokens(user)
}

func (u *authUsecase) Logout(refreshToken string) error {
	return u.userRepo.DeleteRefreshToken(refreshToken)
}

func (u *authUsecase) RequestPasswordReset(email string) error {
	user, err := u.userRepo.FindByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		// Do not reveal which addresses exist
		return nil
	}

	if err := u.userRepo.DeleteOneTimeCodes(user.ID, authdomain.CodePurposeReset); err != nil {
		return err
	}
	token := uuid.New().String()
	record := &authdomain.OneTimeCode{
		UserID:    user.ID,
		Code:      token,
		Purpose:   authdomain.CodePurposeReset,
		ExpiresAt: time.Now().Add(resetExpiry),
	}
	if err := u.userRepo.SaveOneTimeCode(record); err != nil {
		return err
	}

	// The link opens the app via its custom URL scheme
	link := fmt.Sprintf("%s://reset-password?token=%s", u.config.AppLinkScheme, token)
	if err := u.mailer.SendPasswordReset(user.Email, link); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func (u *authUsecase) ResetPassword(token, newPassword string) error {
	record, err := u.userRepo.FindOneTimeCode(token, authdomain.CodePurposeReset)
	if err != nil {
		return err
	}
	if record == nil || record.ExpiresAt.Before(time.Now()) {
		return errors.New("invalid or expired reset token")
	}

	user, err := u.userRepo.FindByID(record.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	hashedPassword, err := repository.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	if err := u.userRepo.Update(user); err != nil {
		return err
	}

	return u.userRepo.DeleteOneTimeCodes(user.ID, authdomain.CodePurposeReset)
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

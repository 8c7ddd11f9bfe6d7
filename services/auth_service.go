package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/authtoken"
	"undangan.link/repositories"
	"undangan.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "email atau kata sandi salah"
	ErrAccountInactive    AuthServiceError = "akun Anda tidak aktif, hubungi admin"
	ErrSessionInvalid     AuthServiceError = "sesi tidak valid, silakan masuk kembali"
	ErrAuthInvalidInput   AuthServiceError = "data tidak valid"
	ErrPasswordMismatch   AuthServiceError = "konfirmasi kata sandi tidak cocok"
	ErrSignUpFailed       AuthServiceError = "pendaftaran gagal"
	ErrSignInFailed       AuthServiceError = "gagal masuk"
)

// SignUpInput is the registration form.
type SignUpInput struct {
	FullName        string `form:"fullName" validate:"required,max=150"`
	Email           string `form:"email" validate:"required,email,max=150"`
	Password        string `form:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `form:"confirmPassword"`
}

// SignInResult is returned by a successful SignIn.
type SignInResult struct {
	User    *models.UserProfile
	Token   string
	Session *authtoken.Session
}

type IAuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.UserProfile, error)
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	ParseSession(token string) (*authtoken.Session, error)
	SessionTTL() time.Duration
}

type AuthService struct {
	repo   repositories.IUserRepository
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService() IAuthService {
	cfg := configs.GetConfig()
	return NewAuthServiceWith(repositories.NewUserRepository(), cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour, time.Now)
}

func NewAuthServiceWith(repo repositories.IUserRepository, secret string, ttl time.Duration, now func() time.Time) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{repo: repo, secret: secret, ttl: ttl, now: now}
}

func (s *AuthService) SessionTTL() time.Duration { return s.ttl }

// SignUp registers an active account with the user role.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*models.UserProfile, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuthInvalidInput, validationMessage(err))
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrUserEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrSignUpFailed, err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrPasswordHashingFailed
	}
	user := &models.UserProfile{
		Email:        input.Email,
		FullName:     input.FullName,
		Role:         models.RoleUser,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserEmailTaken
		}
		configslog.Log.Error("AuthService.SignUp failed", zap.String("email", input.Email), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSignUpFailed, err)
	}
	configslog.SLog.Infof("New account registered: %s", user.Email)
	return user, nil
}

// SignIn checks the credentials, stamps last_login and issues a token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	now := s.now()
	if err := s.repo.UpdateFields(ctx, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		configslog.Log.Warn("AuthService.SignIn could not stamp last_login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	session := authtoken.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		ExpiresAt: now.Add(s.ttl),
	}
	token, err := authtoken.Issue(s.secret, session, s.ttl, now)
	if err != nil {
		configslog.Log.Error("AuthService.SignIn token issue failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}
	return &SignInResult{User: user, Token: token, Session: &session}, nil
}

// ParseSession validates a token and returns its session.
func (s *AuthService) ParseSession(token string) (*authtoken.Session, error) {
	session, err := authtoken.Parse(s.secret, token)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	return session, nil
}

var _ IAuthService = (*AuthService)(nil)

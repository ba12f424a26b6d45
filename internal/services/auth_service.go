package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"spendwise-server/internal/dto"
	"spendwise-server/internal/models"
	"spendwise-server/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
)

// authService implements AuthServiceInterface
type authService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
) AuthServiceInterface {
	return &authService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
	}
}

// Register creates a new user account
func (s *authService) Register(req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			slog.Warn("registration attempt with existing email", "email", email)
			return nil, ErrEmailAlreadyInUse
		}
		slog.Error("failed to create user", "email", email, "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncrementCounter("auth_events_total", map[string]string{"event": "register"})

	slog.Info("user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Login verifies credentials and issues an access token
func (s *authService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			slog.Warn("login attempt for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		slog.Error("failed to get user for login", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		slog.Warn("login attempt with wrong password",
			"user_id", user.ID,
			"email", email)
		s.metrics.IncrementCounter("auth_events_total", map[string]string{"event": "login_failed"})
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		slog.Error("failed to generate access token",
			"user_id", user.ID,
			"error", err)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.UpdateLastLogin()
	if err := s.userRepo.Update(user); err != nil {
		// Login still succeeds; the timestamp is best effort
		slog.Warn("failed to record last login",
			"user_id", user.ID,
			"error", err)
	}

	s.metrics.IncrementCounter("auth_events_total", map[string]string{"event": "login"})

	slog.Info("user logged in", "user_id", user.ID)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

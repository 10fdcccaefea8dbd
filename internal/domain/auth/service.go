package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mandiflow/internal/core/apperror"
	appctx "mandiflow/internal/core/context"
	"mandiflow/internal/core/security"
	"mandiflow/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides authentication logic.
type Service struct {
	users      UserRepository
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(users UserRepository, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		config:     config,
	}
}

// CreateUserInput for provisioning a back-office user. Only admins create
// users; there is no self-registration.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     security.Role
}

// CreateUser provisions a new user with a bcrypt password hash.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	if role := appctx.GetRole(ctx); role != security.RoleAdmin {
		return nil, apperror.NewForbidden("only admins can create users")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(in.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}
	if _, ok := security.ParseRole(string(in.Role)); !ok {
		return nil, apperror.NewValidation("unknown role").WithDetail("role", string(in.Role))
	}

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("email already registered").WithDetail("email", email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(email, string(passwordHash), strings.TrimSpace(in.Name), in.Role)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user created",
		"user_id", user.ID,
		"email", user.Email,
		"role", string(user.Role),
	)
	return user, nil
}

// Login authenticates a user and returns an access token. A wrong password
// counts toward the lockout; the error message never reveals whether the
// email exists.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenResult, *User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("get user by email: %w", err)
	}
	if user == nil {
		return nil, nil, apperror.NewUnauthorized("invalid email or password")
	}
	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			logger.Warn(ctx, "failed to record failed login", "error", updateErr)
		}
		return nil, nil, apperror.NewUnauthorized("invalid email or password")
	}

	user.RecordSuccessfulLogin()
	if err := s.users.Update(ctx, user); err != nil {
		logger.Warn(ctx, "failed to record successful login", "error", err)
	}

	tokenString, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"role", string(user.Role),
	)
	return &TokenResult{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// ValidateToken validates an access token and returns the actor.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*appctx.ActorContext, error) {
	actor, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	return actor, nil
}

// ListUsers returns all back-office users. Admin only.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	if role := appctx.GetRole(ctx); role != security.RoleAdmin {
		return nil, apperror.NewForbidden("only admins can list users")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

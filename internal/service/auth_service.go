package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vesseltrack/internal/auth"
	"vesseltrack/internal/errors"
	"vesseltrack/internal/model"
	"vesseltrack/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the registration fields. Role is deliberately absent:
// new users always start as operators and can only be elevated through the
// admin update path.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Fullname        string
}

// AuthService handles registration and token lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*auth.TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password. The role is forced to
// operator and the staff flag to false regardless of anything the client sent.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Password != input.PasswordConfirm {
		return nil, errors.NewValidationError("password", "Passwords do not match")
	}

	existing, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, errors.NewValidationError("username", "A user with that username already exists")
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Fullname:     input.Fullname,
		Role:         model.RoleOperator,
		IsStaff:      false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index can still fire between the lookup and the insert.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.NewValidationError("username", "A user with that username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns an access/refresh token pair. The
// access token claims snapshot the username and role at issuance time.
func (s *authService) Login(ctx context.Context, username, password string) (*auth.TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, errors.ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token pair: %w", err)
	}

	return pair, user, nil
}

// Refresh validates a refresh token and mints a new access token. The user is
// re-resolved from the store so the new token's role claim reflects the
// current role rather than the one at original issuance.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidToken
	}

	userID, ok := claims.UserID()
	if !ok {
		return "", errors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		// A token for a user that no longer exists is just invalid. Any
		// other store failure is an internal error, not a bad token.
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.ErrInvalidToken
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

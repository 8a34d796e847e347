package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/domain/repositories"
	"team-hub.backend/pkg/crypto"
	"team-hub.backend/pkg/jwt"
	"team-hub.backend/pkg/utils"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register registers a new user
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, *jwt.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.DisplayName) == "" || input.Password == "" {
		return nil, nil, domainerrors.ErrBadRequest
	}

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: passwordHash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.DisplayName)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login authenticates a user and returns a token pair
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*entities.User, *jwt.TokenPair, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.DisplayName)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// GetMe returns the authenticated user's profile
func (u *AuthUsecase) GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

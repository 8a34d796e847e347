package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/usecases"
	"team-hub.backend/pkg/crypto"
	"team-hub.backend/pkg/jwt"
)

func newAuthUsecase() (*usecases.AuthUsecase, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	return usecases.NewAuthUsecase(userRepo, jwtService), userRepo
}

func TestAuthUsecase_Register(t *testing.T) {
	u, userRepo := newAuthUsecase()
	ctx := context.Background()

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domainerrors.ErrNotFound)

	var created *entities.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.User) }).Return(nil)

	user, tokens, err := u.Register(ctx, &entities.RegisterInput{
		Email:       " Alice@Example.com ",
		DisplayName: "Alice",
		Password:    "hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.True(t, crypto.CheckPassword("hunter2", created.PasswordHash))
}

func TestAuthUsecase_Register_Validation(t *testing.T) {
	u, _ := newAuthUsecase()
	ctx := context.Background()

	_, _, err := u.Register(ctx, &entities.RegisterInput{Email: "", DisplayName: "A", Password: "x"})
	require.ErrorIs(t, err, domainerrors.ErrBadRequest)

	_, _, err = u.Register(ctx, &entities.RegisterInput{Email: "a@example.com", DisplayName: " ", Password: "x"})
	require.ErrorIs(t, err, domainerrors.ErrBadRequest)

	_, _, err = u.Register(ctx, &entities.RegisterInput{Email: "a@example.com", DisplayName: "A", Password: ""})
	require.ErrorIs(t, err, domainerrors.ErrBadRequest)
}

func TestAuthUsecase_Register_ExistingEmail(t *testing.T) {
	u, userRepo := newAuthUsecase()

	userRepo.On("GetByEmail", mock.Anything, "a@example.com").
		Return(&entities.User{ID: uuid.New(), Email: "a@example.com"}, nil)

	_, _, err := u.Register(context.Background(), &entities.RegisterInput{
		Email: "a@example.com", DisplayName: "A", Password: "x",
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthUsecase_Login(t *testing.T) {
	u, userRepo := newAuthUsecase()
	ctx := context.Background()

	hash, err := crypto.HashPassword("hunter2")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "a@example.com", DisplayName: "A", PasswordHash: hash}
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)

	got, tokens, err := u.Login(ctx, "A@Example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, tokens.AccessToken)

	_, _, err = u.Login(ctx, "a@example.com", "wrong")
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	u, userRepo := newAuthUsecase()

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainerrors.ErrNotFound)

	_, _, err := u.Login(context.Background(), "ghost@example.com", "x")
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_GetMe(t *testing.T) {
	u, userRepo := newAuthUsecase()
	userID := uuid.New()

	userRepo.On("GetByID", mock.Anything, userID).
		Return(&entities.User{ID: userID, Email: "a@example.com"}, nil)

	user, err := u.GetMe(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, userID, user.ID)
}

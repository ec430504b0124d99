package usecase

import (
	"context"
	"testing"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase(userRepo *userRepoStub) AuthUsecase {
	return NewAuthUsecase(
		testDB(), testLogger(),
		userRepo, &roleRepoStub{}, &doctorRepoStub{}, &patientRepoStub{},
		nil, nil,
	)
}

func TestAuthUsecase_RegisterPatientRejectsBadDateOfBirth(t *testing.T) {
	uc := newAuthUsecase(&userRepoStub{})

	_, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:       "sunita@example.com",
		Password:    "secret123",
		FullName:    "Sunita Devi",
		PhoneNumber: "+919812345678",
		DateOfBirth: "03/04/1988",
		Gender:      entity.GenderFemale,
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestAuthUsecase_LoginUnknownEmail(t *testing.T) {
	uc := newAuthUsecase(&userRepoStub{})

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_LoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	userRepo := &userRepoStub{users: map[uuid.UUID]*entity.User{
		userID: {ID: userID, Email: "sunita@example.com", Password: string(hash), IsActive: true},
	}}
	uc := newAuthUsecase(userRepo)

	_, err = uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sunita@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_LoginDeactivatedUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	userRepo := &userRepoStub{users: map[uuid.UUID]*entity.User{
		userID: {ID: userID, Email: "sunita@example.com", Password: string(hash), IsActive: false},
	}}
	uc := newAuthUsecase(userRepo)

	_, err = uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "sunita@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	userID := uuid.New()
	userRepo := &userRepoStub{users: map[uuid.UUID]*entity.User{
		userID: {
			ID:       userID,
			Email:    "sunita@example.com",
			FullName: "Sunita Devi",
			Role:     entity.Role{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
		},
	}}
	uc := newAuthUsecase(userRepo)

	resp, err := uc.GetCurrentUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Sunita Devi", resp.FullName)
	assert.Equal(t, entity.RolePatient, resp.Role)
}

func TestAuthUsecase_GetCurrentUserNotFound(t *testing.T) {
	uc := newAuthUsecase(&userRepoStub{})

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

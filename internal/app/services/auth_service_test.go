package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/auth"
)

type userStoreStub struct {
	createErr   error
	emailErr    error
	createdUser *models.User
	usersByMail map[string]*models.User
	usersByID   map[int64]*models.User
	updatedRole models.Role
}

func (s *userStoreStub) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	s.createdUser = user
	return nil
}

func (s *userStoreStub) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.emailErr != nil {
		return nil, s.emailErr
	}
	if u, ok := s.usersByMail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *userStoreStub) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := s.usersByID[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *userStoreStub) UpdateProfile(_ context.Context, userID int64, name *string, skills, causesSupported []string) (*models.User, error) {
	u, ok := s.usersByID[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if skills != nil {
		u.Skills = skills
	}
	if causesSupported != nil {
		u.CausesSupported = causesSupported
	}
	return u, nil
}

func (s *userStoreStub) UpdateRole(_ context.Context, userID int64, role models.Role) (*models.User, error) {
	u, ok := s.usersByID[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u.Role = role
	s.updatedRole = role
	return u, nil
}

func (s *userStoreStub) GetAll(_ context.Context) ([]models.User, error) {
	users := []models.User{}
	for _, u := range s.usersByID {
		users = append(users, *u)
	}
	return users, nil
}

func testAuthService(store *userStoreStub) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "volunteerhub.test",
	})
	return NewAuthService(store, jwtService)
}

func TestRegister_DefaultsToVolunteer(t *testing.T) {
	store := &userStoreStub{}
	svc := testAuthService(store)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.COM",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "volunteer", resp.User.Role)
	require.Equal(t, "ada@example.com", resp.User.Email)
	require.NotNil(t, resp.User.Skills)
	require.Empty(t, resp.User.Skills)
	require.NotEqual(t, "secret123", store.createdUser.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := &userStoreStub{createErr: apperrors.ErrEmailAlreadyExists}
	svc := testAuthService(store)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	store := &userStoreStub{usersByMail: map[string]*models.User{
		"ada@example.com": {ID: 1, Name: "Ada", Email: "ada@example.com", Password: hash, Role: models.RoleVolunteer},
	}}
	svc := testAuthService(store)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.EqualValues(t, 1, resp.User.ID)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	store := &userStoreStub{usersByMail: map[string]*models.User{
		"ada@example.com": {ID: 1, Email: "ada@example.com", Password: hash},
	}}
	svc := testAuthService(store)

	_, wrongPass := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "nope"})
	_, unknown := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "nope"})

	require.ErrorIs(t, wrongPass, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, unknown, apperrors.ErrInvalidCredentials)
	require.Equal(t, wrongPass, unknown)
}

func TestLogin_StoreFailureIsNotACredentialError(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := testAuthService(&userStoreStub{emailErr: storeErr})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.ErrorIs(t, err, storeErr)
	require.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	svc := testAuthService(&userStoreStub{})

	_, err := svc.UpdateUserRole(context.Background(), 1, "superuser")
	require.ErrorIs(t, err, apperrors.ErrInvalidRole)
}

func TestUpdateUserRole_Success(t *testing.T) {
	store := &userStoreStub{usersByID: map[int64]*models.User{
		2: {ID: 2, Name: "Bo", Email: "bo@example.com", Role: models.RoleVolunteer},
	}}
	svc := testAuthService(store)

	resp, err := svc.UpdateUserRole(context.Background(), 2, "organization")
	require.NoError(t, err)
	require.Equal(t, "organization", resp.User.Role)
	require.Equal(t, models.RoleOrganization, store.updatedRole)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	store := &userStoreStub{usersByID: map[int64]*models.User{
		1: {ID: 1, Name: "Ada", Email: "ada@example.com", Skills: []string{"first aid"}},
	}}
	svc := testAuthService(store)

	newName := "Ada L"
	resp, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Ada L", resp.Name)
	require.Equal(t, []string{"first aid"}, resp.Skills)
}

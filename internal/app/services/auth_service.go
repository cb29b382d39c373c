package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/auth"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// AuthService defines the interface for authentication and user
// account operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserSummary, error)
	UpdateUserRole(ctx context.Context, userID int64, role string) (*dto.UpdateUserRoleResponse, error)
}

// userStore is the slice of the user repository the auth service needs
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name *string, skills, causesSupported []string) (*models.User, error)
	UpdateRole(ctx context.Context, userID int64, role models.Role) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   userStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userStore, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account. Everyone starts as a volunteer;
// role promotion is an admin operation.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Password:        hashedPassword,
		Skills:          emptyIfNil(req.Skills),
		CausesSupported: emptyIfNil(req.CausesSupported),
		Role:            models.RoleVolunteer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", user.ID).Msg("User registered")

	return &dto.RegisterResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	}, nil
}

// Login verifies credentials and issues a bearer token. Both an
// unknown email and a wrong password return the same error so the
// response does not reveal which one was wrong.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate token")
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// GetProfile returns the caller's full profile.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Skills, req.CausesSupported)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// ListUsers returns all user accounts. Admin only; the route layer
// enforces the role.
func (s *authServiceImpl) ListUsers(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, dto.UserSummary{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  string(u.Role),
		})
	}
	return summaries, nil
}

// UpdateUserRole changes a user's role. Admin only.
func (s *authServiceImpl) UpdateUserRole(ctx context.Context, userID int64, role string) (*dto.UpdateUserRoleResponse, error) {
	if !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.userRepo.UpdateRole(ctx, userID, models.Role(role))
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", userID).Str("role", role).Msg("User role updated")

	return &dto.UpdateUserRoleResponse{
		Message: "User role updated successfully",
		User: dto.UserSummary{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Skills:          emptyIfNil(u.Skills),
		CausesSupported: emptyIfNil(u.CausesSupported),
		VolunteerHours:  u.VolunteerHours,
		Role:            string(u.Role),
		CreatedAt:       u.CreatedAt,
	}
}

func toProfileResponse(u *models.User) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Skills:             emptyIfNil(u.Skills),
		CausesSupported:    emptyIfNil(u.CausesSupported),
		VolunteerHours:     u.VolunteerHours,
		VolunteerHistory:   u.VolunteerHistory,
		TotalContributions: u.TotalContributions,
		CreatedAt:          u.CreatedAt,
	}
}

// emptyIfNil keeps array fields serializing as [] instead of null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package services

import (
	"github.com/ekoca/volunteerhub/internal/app/repositories"
	"github.com/ekoca/volunteerhub/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService          AuthService
	EventService         EventService
	CommunityHelpService CommunityHelpService
	TeamService          TeamService
}

// NewServices initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		AuthService:          NewAuthService(repos.UserRepository, jwtService),
		EventService:         NewEventService(repos.EventRepository, repos.UserRepository),
		CommunityHelpService: NewCommunityHelpService(repos.CommunityHelpRepository, repos.UserRepository),
		TeamService:          NewTeamService(repos.TeamRepository, repos.UserRepository),
	}
}

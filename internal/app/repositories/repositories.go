package repositories

import (
	"github.com/ekoca/volunteerhub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	EventRepository         *EventRepository
	CommunityHelpRepository *CommunityHelpRepository
	TeamRepository          *TeamRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(database),
		EventRepository:         NewEventRepository(database),
		CommunityHelpRepository: NewCommunityHelpRepository(database),
		TeamRepository:          NewTeamRepository(database),
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ekoca/volunteerhub/internal/app/controllers"
	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/middleware"
	"github.com/ekoca/volunteerhub/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	helpController *controllers.CommunityHelpController,
	teamController *controllers.TeamController,
	jwtService *auth.JWTService,
) {
	api := router.Group("/api")

	// --- Public Auth routes ---
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authController.Register)
		authRoutes.POST("/login", authController.Login)
	}

	// --- Authenticated Auth routes ---
	authProtected := api.Group("/auth")
	authProtected.Use(middleware.JWTAuth(jwtService))
	{
		authProtected.GET("/profile", authController.GetProfile)
		authProtected.PUT("/profile", authController.UpdateProfile)

		adminOnly := authProtected.Group("")
		adminOnly.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			adminOnly.GET("/users", authController.ListUsers)
			adminOnly.PUT("/users/:id/role", authController.UpdateUserRole)
		}
	}

	// --- Event routes ---
	events := api.Group("/events")
	{
		events.GET("", eventController.GetAllEvents)
		events.GET("/:id", eventController.GetEventByID)

		eventsCreate := events.Group("")
		eventsCreate.Use(middleware.JWTAuth(jwtService))
		{
			eventsCreate.POST("", eventController.CreateEvent)
		}

		// Only volunteers sign up as attendees.
		eventsJoin := events.Group("")
		eventsJoin.Use(middleware.JWTAuth(jwtService), middleware.RoleRequired(models.RoleVolunteer))
		{
			eventsJoin.POST("/:id/join", eventController.JoinEvent)
		}
	}

	// --- Community help routes ---
	help := api.Group("/community-help")
	{
		help.GET("", helpController.GetAllHelpRequests)
		help.GET("/:id", helpController.GetHelpRequestByID)
		help.GET("/:id/comments", helpController.GetComments)

		helpProtected := help.Group("")
		helpProtected.Use(middleware.JWTAuth(jwtService))
		{
			helpProtected.POST("", helpController.CreateHelpRequest)
			helpProtected.POST("/:id/comments", helpController.AddComment)
			helpProtected.PATCH("/:id/status", helpController.UpdateStatus)
		}
	}

	// --- Team routes ---
	teams := api.Group("/teams")
	{
		teams.GET("/leaderboard", teamController.GetLeaderboard)

		teamsProtected := teams.Group("")
		teamsProtected.Use(middleware.JWTAuth(jwtService))
		{
			teamsProtected.POST("", teamController.CreateTeam)
			teamsProtected.GET("", teamController.GetAllTeams)
			teamsProtected.GET("/created", teamController.GetCreatedTeams)
			teamsProtected.GET("/invitations", teamController.GetPendingInvitations)
			teamsProtected.POST("/invitations/:id/respond", teamController.RespondToInvitation)
			teamsProtected.GET("/:id/dashboard", teamController.GetTeamDashboard)
			teamsProtected.POST("/:id/join", teamController.JoinTeam)
			teamsProtected.POST("/:id/invite", teamController.SendInvitation)
		}
	}

	// --- User routes ---
	user := api.Group("/user")
	user.Use(middleware.JWTAuth(jwtService))
	{
		user.GET("/teams", teamController.GetUserTeams)
	}
}

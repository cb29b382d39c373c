package routes

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ekoca/volunteerhub/internal/app/controllers"
	"github.com/ekoca/volunteerhub/internal/pkg/auth"
)

func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "volunteerhub.test",
	})

	// Handlers are never invoked here, only registered.
	SetupRouter(
		router,
		controllers.NewAuthController(nil),
		controllers.NewEventController(nil),
		controllers.NewCommunityHelpController(nil),
		controllers.NewTeamController(nil),
		jwtService,
	)
	return router
}

func routeSet(router *gin.Engine) map[string]bool {
	routes := map[string]bool{}
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestSetupRouter_RegistersExpectedRoutes(t *testing.T) {
	routes := routeSet(buildTestRouter())

	expected := []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/profile",
		"PUT /api/auth/profile",
		"GET /api/auth/users",
		"PUT /api/auth/users/:id/role",
		"GET /api/events",
		"GET /api/events/:id",
		"POST /api/events",
		"POST /api/events/:id/join",
		"GET /api/community-help",
		"GET /api/community-help/:id",
		"GET /api/community-help/:id/comments",
		"POST /api/community-help",
		"POST /api/community-help/:id/comments",
		"PATCH /api/community-help/:id/status",
		"GET /api/teams/leaderboard",
		"POST /api/teams",
		"GET /api/teams",
		"GET /api/teams/created",
		"GET /api/teams/invitations",
		"POST /api/teams/invitations/:id/respond",
		"GET /api/teams/:id/dashboard",
		"POST /api/teams/:id/join",
		"POST /api/teams/:id/invite",
		"GET /api/user/teams",
	}
	for _, route := range expected {
		require.True(t, routes[route], "missing route %s", route)
	}
}

func TestSetupRouter_StatusUsesPatchNotPut(t *testing.T) {
	routes := routeSet(buildTestRouter())
	require.False(t, routes["PUT /api/community-help/:id/status"])
	require.True(t, routes["PATCH /api/community-help/:id/status"])
}

func TestSetupRouter_InvitePath(t *testing.T) {
	routes := routeSet(buildTestRouter())
	require.False(t, routes["POST /api/teams/:id/invitations"])
	require.True(t, routes["POST /api/teams/:id/invite"])
}

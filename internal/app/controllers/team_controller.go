package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/app/services"
	"github.com/ekoca/volunteerhub/internal/middleware"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
)

// TeamController handles team endpoints
type TeamController struct {
	teamService services.TeamService
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

// CreateTeam creates a new team
// @Summary Create a team
// @Description Creates a team with the caller as its admin.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "Team information"
// @Success 201 {object} dto.CreateTeamResponse "Team created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	var req dto.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.teamService.CreateTeam(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetAllTeams lists teams
// @Summary List teams
// @Description Lists teams with search and sorting, including members, events and achievements.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in team names"
// @Param sort_by query string false "Sort key: achievement_points, member_count or created_at"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.TeamListResponse "Teams"
// @Router /teams [get]
func (c *TeamController) GetAllTeams(ctx *gin.Context) {
	page, limit, _ := helpers.ParseListParams(ctx)
	filter := dto.TeamFilter{
		Page:     page,
		Limit:    limit,
		SortBy:   ctx.DefaultQuery("sort_by", "achievement_points"),
		ViewerID: middleware.UserID(ctx),
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}

	resp, err := c.teamService.GetAllTeams(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetLeaderboard returns the public team leaderboard
// @Summary Team leaderboard
// @Description Top teams by achievement points with their recent achievements.
// @Tags teams
// @Produce json
// @Success 200 {object} dto.LeaderboardResponse "Leaderboard"
// @Router /teams/leaderboard [get]
func (c *TeamController) GetLeaderboard(ctx *gin.Context) {
	resp, err := c.teamService.GetLeaderboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetTeamDashboard returns the per-team composite view
// @Summary Team dashboard
// @Description Team details with members, recent events and achievements. Private teams are members-only.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.TeamDashboardResponse "Dashboard"
// @Failure 403 {object} dto.ErrorResponse "Private team"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{id}/dashboard [get]
func (c *TeamController) GetTeamDashboard(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.GetTeamDashboard(ctx.Request.Context(), teamID, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// JoinTeam adds the caller to a public team
// @Summary Join a team
// @Description Joins a public team as a regular member. Private teams require an invitation.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} dto.MessageResponse "Joined"
// @Failure 403 {object} dto.ErrorResponse "Private team"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /teams/{id}/join [post]
func (c *TeamController) JoinTeam(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.teamService.JoinTeam(ctx.Request.Context(), teamID, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// SendInvitation invites a user to a team
// @Summary Invite a user
// @Description Invites a user by email. Team admins and moderators only.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body dto.SendInvitationRequest true "Invited user's email"
// @Success 201 {object} dto.MessageResponse "Invitation sent"
// @Failure 403 {object} dto.ErrorResponse "Not an admin or moderator"
// @Failure 404 {object} dto.ErrorResponse "Team or user not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member or already invited"
// @Router /teams/{id}/invite [post]
func (c *TeamController) SendInvitation(ctx *gin.Context) {
	teamID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.teamService.SendInvitation(ctx.Request.Context(), teamID, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// RespondToInvitation accepts or declines an invitation
// @Summary Respond to an invitation
// @Description Accepts or declines a pending invitation. One response per invitation.
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Param request body dto.RespondInvitationRequest true "Accept or decline"
// @Success 200 {object} dto.MessageResponse "Responded"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found or already handled"
// @Router /teams/invitations/{id}/respond [post]
func (c *TeamController) RespondToInvitation(ctx *gin.Context) {
	invitationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RespondInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.teamService.RespondToInvitation(ctx.Request.Context(), invitationID, middleware.UserID(ctx), *req.Accept)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetPendingInvitations lists the caller's pending invitations
// @Summary List pending invitations
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PendingInvitationsResponse "Pending invitations"
// @Router /teams/invitations [get]
func (c *TeamController) GetPendingInvitations(ctx *gin.Context) {
	resp, err := c.teamService.GetPendingInvitations(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetCreatedTeams lists the teams the caller created
// @Summary List created teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param is_private query bool false "Filter by privacy"
// @Success 200 {object} dto.CreatedTeamsResponse "Created teams"
// @Router /teams/created [get]
func (c *TeamController) GetCreatedTeams(ctx *gin.Context) {
	var isPrivate *bool
	if raw := ctx.Query("is_private"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("is_private must be a boolean"))
			return
		}
		isPrivate = &parsed
	}

	resp, err := c.teamService.GetCreatedTeams(ctx.Request.Context(), middleware.UserID(ctx), isPrivate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetUserTeams lists the caller's team memberships
// @Summary List own teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserTeamsResponse "Memberships"
// @Router /user/teams [get]
func (c *TeamController) GetUserTeams(ctx *gin.Context) {
	resp, err := c.teamService.GetUserTeams(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/app/services"
	"github.com/ekoca/volunteerhub/internal/middleware"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
)

// CommunityHelpController handles community help request endpoints
type CommunityHelpController struct {
	helpService services.CommunityHelpService
}

// NewCommunityHelpController creates a new CommunityHelpController
func NewCommunityHelpController(helpService services.CommunityHelpService) *CommunityHelpController {
	return &CommunityHelpController{helpService: helpService}
}

// CreateHelpRequest creates a new help request
// @Summary Create a help request
// @Tags community-help
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateHelpRequestRequest true "Help request information"
// @Success 201 {object} dto.CreateHelpRequestResponse "Help request created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /community-help [post]
func (c *CommunityHelpController) CreateHelpRequest(ctx *gin.Context) {
	var req dto.CreateHelpRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.helpService.CreateHelpRequest(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetAllHelpRequests lists help requests
// @Summary List help requests
// @Description Lists help requests, most urgent first, with optional filters.
// @Tags community-help
// @Produce json
// @Param category query string false "Filter by category"
// @Param location query string false "Filter by location substring"
// @Param urgency_level query string false "Filter by urgency level"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param all query bool false "Return every match in one page"
// @Success 200 {object} dto.HelpRequestListResponse "Help requests"
// @Router /community-help [get]
func (c *CommunityHelpController) GetAllHelpRequests(ctx *gin.Context) {
	page, limit, all := helpers.ParseListParams(ctx)
	filter := dto.HelpRequestFilter{Page: page, Limit: limit, All: all}

	if category := ctx.Query("category"); category != "" {
		filter.Category = &category
	}
	if location := ctx.Query("location"); location != "" {
		filter.Location = &location
	}
	if urgency := ctx.Query("urgency_level"); urgency != "" {
		filter.UrgencyLevel = &urgency
	}
	if status := ctx.Query("status"); status != "" {
		filter.Status = &status
	}

	resp, err := c.helpService.GetAllHelpRequests(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetHelpRequestByID returns one help request with its comments
// @Summary Get a help request
// @Tags community-help
// @Produce json
// @Param id path int true "Help request ID"
// @Success 200 {object} dto.HelpRequestResponse "Help request"
// @Failure 404 {object} dto.ErrorResponse "Help request not found"
// @Router /community-help/{id} [get]
func (c *CommunityHelpController) GetHelpRequestByID(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.helpService.GetHelpRequestByID(ctx.Request.Context(), requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// AddComment adds a comment to a help request
// @Summary Comment on a help request
// @Description Adds a comment. A helper comment also increments the request's helper count.
// @Tags community-help
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Help request ID"
// @Param request body dto.AddCommentRequest true "Comment"
// @Success 201 {object} dto.AddCommentResponse "Comment added"
// @Failure 404 {object} dto.ErrorResponse "Help request not found"
// @Router /community-help/{id}/comments [post]
func (c *CommunityHelpController) AddComment(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.helpService.AddComment(ctx.Request.Context(), requestID, middleware.UserID(ctx), middleware.UserRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetComments lists the comments of a help request
// @Summary List comments
// @Tags community-help
// @Produce json
// @Param id path int true "Help request ID"
// @Success 200 {object} dto.CommentListResponse "Comments"
// @Failure 404 {object} dto.ErrorResponse "Help request not found"
// @Router /community-help/{id}/comments [get]
func (c *CommunityHelpController) GetComments(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.helpService.GetComments(ctx.Request.Context(), requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UpdateStatus transitions a help request's status
// @Summary Update help request status
// @Description Transitions the request's status. Only the creator may do this.
// @Tags community-help
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Help request ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.UpdateStatusResponse "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Help request not found"
// @Router /community-help/{id}/status [patch]
func (c *CommunityHelpController) UpdateStatus(ctx *gin.Context) {
	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.helpService.UpdateStatus(ctx.Request.Context(), requestID, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

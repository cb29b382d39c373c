package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/app/services"
	"github.com/ekoca/volunteerhub/internal/middleware"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
)

// EventController handles event endpoints
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// CreateEvent creates a new event
// @Summary Create an event
// @Description Creates an event. The date must be in the future.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.CreateEventResponse "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.eventService.CreateEvent(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// GetAllEvents lists events
// @Summary List events
// @Description Lists events with optional category, location and date filters.
// @Tags events
// @Produce json
// @Param category query string false "Filter by category"
// @Param location query string false "Filter by location substring"
// @Param date query string false "Filter by date (RFC 3339 or YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param all query bool false "Return every match in one page"
// @Success 200 {object} dto.EventListResponse "Events"
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	filter, err := parseEventFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid date filter"),
		))
		return
	}

	resp, err := c.eventService.GetAllEvents(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// GetEventByID returns one event
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.EventResponse "Event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.GetEventByID(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// JoinEvent registers the caller for an event
// @Summary Join an event
// @Description Registers the caller as an attendee. Volunteers only; joining twice fails.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.JoinEventResponse "Joined"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered"
// @Router /events/{id}/join [post]
func (c *EventController) JoinEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.JoinEvent(ctx.Request.Context(), eventID, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func parseEventFilter(ctx *gin.Context) (dto.EventFilter, error) {
	page, limit, all := helpers.ParseListParams(ctx)
	filter := dto.EventFilter{Page: page, Limit: limit, All: all}

	if category := ctx.Query("category"); category != "" {
		filter.Category = &category
	}
	if location := ctx.Query("location"); location != "" {
		filter.Location = &location
	}
	if dateStr := ctx.Query("date"); dateStr != "" {
		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			date, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				return filter, err
			}
		}
		filter.Date = &date
	}

	return filter, nil
}

// parseIDParam parses a numeric path parameter, answering 400 itself
// when the value is not a positive integer.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid ID parameter"),
		))
		return 0, false
	}
	return id, true
}

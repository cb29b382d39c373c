package services

import (
	"context"
	"time"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// EventService defines the interface for event operations
type EventService interface {
	CreateEvent(ctx context.Context, userID int64, userRole string, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error)
	GetAllEvents(ctx context.Context, filter dto.EventFilter) (*dto.EventListResponse, error)
	GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	JoinEvent(ctx context.Context, eventID, userID int64) (*dto.JoinEventResponse, error)
}

// eventStore is the slice of the event repository the service needs
type eventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetAll(ctx context.Context, filter dto.EventFilter) ([]models.Event, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	AddAttendee(ctx context.Context, eventID, userID int64) (*models.Event, error)
}

// nameResolver resolves user IDs to display names in bulk
type nameResolver interface {
	GetNamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo eventStore
	userNames nameResolver
}

// NewEventService creates a new EventService
func NewEventService(eventRepo eventStore, userNames nameResolver) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		userNames: userNames,
	}
}

// CreateEvent creates a new event. The creator's role is snapshotted
// on the row so later role changes do not rewrite history.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, userID int64, userRole string, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error) {
	if !req.Date.After(time.Now()) {
		return nil, apperrors.NewValidationError("event date must be in the future")
	}

	event := &models.Event{
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Location:      req.Location,
		Category:      req.Category,
		CreatedBy:     userID,
		CreatedByRole: userRole,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("eventID", event.ID).Int64("userID", userID).Msg("Event created")

	event.Attendees = emptyIfNilIDs(event.Attendees)
	return &dto.CreateEventResponse{
		Message: "Event created successfully",
		Event:   *event,
	}, nil
}

// GetAllEvents lists events with filters and pagination. Creator and
// attendee names are resolved in one batch for the whole page and the
// grouping happens here rather than in SQL.
func (s *eventServiceImpl) GetAllEvents(ctx context.Context, filter dto.EventFilter) (*dto.EventListResponse, error) {
	events, totalItems, err := s.eventRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	names, err := s.resolveNames(ctx, events)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, buildEventResponse(&events[i], names))
	}

	var pagination dto.Pagination
	if filter.All {
		pagination = helpers.NewAllPagination(totalItems)
	} else {
		pagination = helpers.NewPagination(totalItems, filter.Page, filter.Limit)
	}

	return &dto.EventListResponse{
		Pagination: pagination,
		Events:     responses,
	}, nil
}

// GetEventByID returns one event with creator and attendee names.
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	names, err := s.resolveNames(ctx, []models.Event{*event})
	if err != nil {
		return nil, err
	}

	response := buildEventResponse(event, names)
	return &response, nil
}

// JoinEvent registers the caller as an attendee. Duplicate joins fail
// with a conflict; the write is a single conditional update so two
// concurrent joins cannot both succeed.
func (s *eventServiceImpl) JoinEvent(ctx context.Context, eventID, userID int64) (*dto.JoinEventResponse, error) {
	event, err := s.eventRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("User joined event")

	names, err := s.resolveNames(ctx, []models.Event{*event})
	if err != nil {
		return nil, err
	}

	return &dto.JoinEventResponse{
		Message: "Successfully registered for the event",
		Event:   buildEventResponse(event, names),
	}, nil
}

// resolveNames collects every user ID referenced by the events and
// resolves them in one query.
func (s *eventServiceImpl) resolveNames(ctx context.Context, events []models.Event) (map[int64]string, error) {
	seen := map[int64]struct{}{}
	ids := []int64{}
	for i := range events {
		for _, id := range append([]int64{events[i].CreatedBy}, events[i].Attendees...) {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return s.userNames.GetNamesByIDs(ctx, ids)
}

func buildEventResponse(event *models.Event, names map[int64]string) dto.EventResponse {
	attendees := make([]dto.AttendeeDetail, 0, len(event.Attendees))
	for _, id := range event.Attendees {
		attendees = append(attendees, dto.AttendeeDetail{ID: id, Name: names[id]})
	}

	e := *event
	e.Attendees = emptyIfNilIDs(e.Attendees)
	return dto.EventResponse{
		Event:            e,
		CreatorName:      names[event.CreatedBy],
		AttendeesDetails: attendees,
	}
}

// emptyIfNilIDs keeps ID array fields serializing as [] instead of null.
func emptyIfNilIDs(s []int64) []int64 {
	if s == nil {
		return []int64{}
	}
	return s
}

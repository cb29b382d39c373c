package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
)

type eventStoreStub struct {
	events     []models.Event
	totalItems int64
	addErr     error
	added      *models.Event
	created    *models.Event
}

func (s *eventStoreStub) Create(_ context.Context, event *models.Event) error {
	event.ID = 10
	event.Attendees = []int64{}
	event.CreatedAt = time.Now()
	s.created = event
	return nil
}

func (s *eventStoreStub) GetAll(_ context.Context, _ dto.EventFilter) ([]models.Event, int64, error) {
	return s.events, s.totalItems, nil
}

func (s *eventStoreStub) GetByID(_ context.Context, id int64) (*models.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			return &s.events[i], nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (s *eventStoreStub) AddAttendee(_ context.Context, eventID, userID int64) (*models.Event, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	event, err := s.GetByID(context.Background(), eventID)
	if err != nil {
		return nil, err
	}
	updated := *event
	updated.Attendees = append(updated.Attendees, userID)
	s.added = &updated
	return &updated, nil
}

type nameResolverStub struct {
	names map[int64]string
}

func (s *nameResolverStub) GetNamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	result := map[int64]string{}
	for _, id := range ids {
		if name, ok := s.names[id]; ok {
			result[id] = name
		}
	}
	return result, nil
}

func TestCreateEvent_RejectsPastDate(t *testing.T) {
	svc := NewEventService(&eventStoreStub{}, &nameResolverStub{})

	_, err := svc.CreateEvent(context.Background(), 1, "organization", &dto.CreateEventRequest{
		Title:       "Cleanup",
		Description: "Beach cleanup",
		Date:        time.Now().Add(-24 * time.Hour),
		Time:        time.Now(),
		Location:    "Shoreline",
		Category:    "environment",
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateEvent_SnapshotsCreatorRole(t *testing.T) {
	store := &eventStoreStub{}
	svc := NewEventService(store, &nameResolverStub{})

	resp, err := svc.CreateEvent(context.Background(), 5, "organization", &dto.CreateEventRequest{
		Title:       "Cleanup",
		Description: "Beach cleanup",
		Date:        time.Now().Add(48 * time.Hour),
		Time:        time.Now().Add(48 * time.Hour),
		Location:    "Shoreline",
		Category:    "environment",
	})
	require.NoError(t, err)
	require.Equal(t, "organization", store.created.CreatedByRole)
	require.EqualValues(t, 5, store.created.CreatedBy)
	require.NotNil(t, resp.Event.Attendees)
}

func TestGetAllEvents_ResolvesNamesAndPaginates(t *testing.T) {
	store := &eventStoreStub{
		events: []models.Event{
			{ID: 1, Title: "Cleanup", CreatedBy: 5, Attendees: []int64{7, 8}},
		},
		totalItems: 12,
	}
	resolver := &nameResolverStub{names: map[int64]string{5: "Org", 7: "Ada", 8: "Bo"}}
	svc := NewEventService(store, resolver)

	resp, err := svc.GetAllEvents(context.Background(), dto.EventFilter{Page: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Events, 1)
	require.Equal(t, "Org", resp.Events[0].CreatorName)
	require.Equal(t, []dto.AttendeeDetail{{ID: 7, Name: "Ada"}, {ID: 8, Name: "Bo"}}, resp.Events[0].AttendeesDetails)

	require.EqualValues(t, 12, resp.Pagination.TotalItems)
	require.Equal(t, 3, resp.Pagination.TotalPages)
	require.Equal(t, 2, resp.Pagination.CurrentPage)
	require.True(t, resp.Pagination.HasNext)
	require.True(t, resp.Pagination.HasPrevious)
}

func TestGetAllEvents_AllFlagCollapsesToOnePage(t *testing.T) {
	store := &eventStoreStub{events: []models.Event{{ID: 1, CreatedBy: 5}}, totalItems: 1}
	svc := NewEventService(store, &nameResolverStub{})

	resp, err := svc.GetAllEvents(context.Background(), dto.EventFilter{All: true})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Pagination.TotalPages)
	require.Equal(t, 1, resp.Pagination.CurrentPage)
	require.False(t, resp.Pagination.HasNext)
}

func TestJoinEvent_Success(t *testing.T) {
	store := &eventStoreStub{events: []models.Event{{ID: 3, CreatedBy: 5, Attendees: []int64{}}}}
	resolver := &nameResolverStub{names: map[int64]string{5: "Org", 9: "Ada"}}
	svc := NewEventService(store, resolver)

	resp, err := svc.JoinEvent(context.Background(), 3, 9)
	require.NoError(t, err)
	require.Equal(t, []dto.AttendeeDetail{{ID: 9, Name: "Ada"}}, resp.Event.AttendeesDetails)
}

func TestJoinEvent_DuplicateConflict(t *testing.T) {
	store := &eventStoreStub{addErr: apperrors.ErrAlreadyAttending}
	svc := NewEventService(store, &nameResolverStub{})

	_, err := svc.JoinEvent(context.Background(), 3, 9)
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestJoinEvent_UnknownEvent(t *testing.T) {
	store := &eventStoreStub{addErr: apperrors.ErrEventNotFound}
	svc := NewEventService(store, &nameResolverStub{})

	_, err := svc.JoinEvent(context.Background(), 99, 9)
	require.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

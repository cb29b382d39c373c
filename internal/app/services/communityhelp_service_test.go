package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
)

type helpStoreStub struct {
	requests   map[int64]*models.HelpRequest
	comments   map[int64][]dto.CommentResponse
	totalItems int64
	addedCount int
}

func (s *helpStoreStub) Create(_ context.Context, request *models.HelpRequest) error {
	request.ID = 1
	request.Status = models.HelpStatusOpen
	return nil
}

func (s *helpStoreStub) GetAll(_ context.Context, _ dto.HelpRequestFilter) ([]models.HelpRequest, int64, error) {
	requests := []models.HelpRequest{}
	for _, r := range s.requests {
		requests = append(requests, *r)
	}
	return requests, s.totalItems, nil
}

func (s *helpStoreStub) GetByID(_ context.Context, id int64) (*models.HelpRequest, error) {
	if r, ok := s.requests[id]; ok {
		return r, nil
	}
	return nil, apperrors.ErrHelpRequestNotFound
}

func (s *helpStoreStub) AddComment(_ context.Context, comment *models.HelpComment) error {
	comment.ID = 100
	s.addedCount++
	if comment.IsHelper {
		s.requests[comment.HelpRequestID].HelperCount++
	}
	return nil
}

func (s *helpStoreStub) GetCommentsByRequestIDs(_ context.Context, requestIDs []int64) (map[int64][]dto.CommentResponse, error) {
	result := map[int64][]dto.CommentResponse{}
	for _, id := range requestIDs {
		if c, ok := s.comments[id]; ok {
			result[id] = c
		}
	}
	return result, nil
}

func (s *helpStoreStub) UpdateStatus(_ context.Context, id int64, status models.HelpRequestStatus) (*models.HelpRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, apperrors.ErrHelpRequestNotFound
	}
	r.Status = status
	return r, nil
}

func TestCreateHelpRequest_StartsOpen(t *testing.T) {
	svc := NewCommunityHelpService(&helpStoreStub{}, &nameResolverStub{})

	resp, err := svc.CreateHelpRequest(context.Background(), 4, "volunteer", &dto.CreateHelpRequestRequest{
		Title:        "Need drivers",
		Description:  "Transport for food bank",
		Location:     "Downtown",
		Category:     "logistics",
		UrgencyLevel: "urgent",
	})
	require.NoError(t, err)
	require.Equal(t, models.HelpStatusOpen, resp.HelpRequest.Status)
	require.Equal(t, models.UrgencyUrgent, resp.HelpRequest.UrgencyLevel)
	require.Equal(t, "volunteer", resp.HelpRequest.CreatedByRole)
}

func TestAddComment_UnknownRequest(t *testing.T) {
	svc := NewCommunityHelpService(&helpStoreStub{requests: map[int64]*models.HelpRequest{}}, &nameResolverStub{})

	_, err := svc.AddComment(context.Background(), 42, 4, "volunteer", &dto.AddCommentRequest{CommentText: "I can help"})
	require.ErrorIs(t, err, apperrors.ErrHelpRequestNotFound)
}

func TestAddComment_HelperBumpsCounter(t *testing.T) {
	store := &helpStoreStub{requests: map[int64]*models.HelpRequest{
		1: {ID: 1, CreatedBy: 2},
	}}
	resolver := &nameResolverStub{names: map[int64]string{4: "Ada"}}
	svc := NewCommunityHelpService(store, resolver)

	resp, err := svc.AddComment(context.Background(), 1, 4, "volunteer", &dto.AddCommentRequest{
		CommentText: "I can help",
		IsHelper:    true,
	})
	require.NoError(t, err)
	require.Equal(t, "Ada", resp.Comment.CommenterName)
	require.Equal(t, 1, store.requests[1].HelperCount)
}

func TestUpdateStatus_OnlyCreator(t *testing.T) {
	store := &helpStoreStub{requests: map[int64]*models.HelpRequest{
		1: {ID: 1, CreatedBy: 2, Status: models.HelpStatusOpen},
	}}
	svc := NewCommunityHelpService(store, &nameResolverStub{})

	_, err := svc.UpdateStatus(context.Background(), 1, 99, &dto.UpdateStatusRequest{Status: "completed"})
	require.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := svc.UpdateStatus(context.Background(), 1, 2, &dto.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, models.HelpStatusCompleted, resp.HelpRequest.Status)
}

func TestGetHelpRequestByID_AttachesComments(t *testing.T) {
	store := &helpStoreStub{
		requests: map[int64]*models.HelpRequest{1: {ID: 1, CreatedBy: 2}},
		comments: map[int64][]dto.CommentResponse{
			1: {{CommenterName: "Ada"}},
		},
	}
	resolver := &nameResolverStub{names: map[int64]string{2: "Bo"}}
	svc := NewCommunityHelpService(store, resolver)

	resp, err := svc.GetHelpRequestByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Bo", resp.CreatorName)
	require.Len(t, resp.Comments, 1)
}

func TestGetComments_EmptyIsArray(t *testing.T) {
	store := &helpStoreStub{requests: map[int64]*models.HelpRequest{1: {ID: 1}}}
	svc := NewCommunityHelpService(store, &nameResolverStub{})

	resp, err := svc.GetComments(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Comments)
	require.Empty(t, resp.Comments)
}

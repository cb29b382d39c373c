package services

import (
	"context"

	"github.com/ekoca/volunteerhub/internal/app/models"
	"github.com/ekoca/volunteerhub/internal/app/models/dto"
	"github.com/ekoca/volunteerhub/internal/pkg/apperrors"
	"github.com/ekoca/volunteerhub/internal/pkg/helpers"
	"github.com/ekoca/volunteerhub/internal/pkg/logger"
)

// CommunityHelpService defines the interface for community help
// request operations
type CommunityHelpService interface {
	CreateHelpRequest(ctx context.Context, userID int64, userRole string, req *dto.CreateHelpRequestRequest) (*dto.CreateHelpRequestResponse, error)
	GetAllHelpRequests(ctx context.Context, filter dto.HelpRequestFilter) (*dto.HelpRequestListResponse, error)
	GetHelpRequestByID(ctx context.Context, id int64) (*dto.HelpRequestResponse, error)
	AddComment(ctx context.Context, requestID, userID int64, userRole string, req *dto.AddCommentRequest) (*dto.AddCommentResponse, error)
	GetComments(ctx context.Context, requestID int64) (*dto.CommentListResponse, error)
	UpdateStatus(ctx context.Context, requestID, userID int64, req *dto.UpdateStatusRequest) (*dto.UpdateStatusResponse, error)
}

// helpStore is the slice of the community help repository the service needs
type helpStore interface {
	Create(ctx context.Context, request *models.HelpRequest) error
	GetAll(ctx context.Context, filter dto.HelpRequestFilter) ([]models.HelpRequest, int64, error)
	GetByID(ctx context.Context, id int64) (*models.HelpRequest, error)
	AddComment(ctx context.Context, comment *models.HelpComment) error
	GetCommentsByRequestIDs(ctx context.Context, requestIDs []int64) (map[int64][]dto.CommentResponse, error)
	UpdateStatus(ctx context.Context, id int64, status models.HelpRequestStatus) (*models.HelpRequest, error)
}

// communityHelpServiceImpl implements CommunityHelpService
type communityHelpServiceImpl struct {
	helpRepo  helpStore
	userNames nameResolver
}

// NewCommunityHelpService creates a new CommunityHelpService
func NewCommunityHelpService(helpRepo helpStore, userNames nameResolver) CommunityHelpService {
	return &communityHelpServiceImpl{
		helpRepo:  helpRepo,
		userNames: userNames,
	}
}

// CreateHelpRequest creates a new help request, starting as open.
func (s *communityHelpServiceImpl) CreateHelpRequest(ctx context.Context, userID int64, userRole string, req *dto.CreateHelpRequestRequest) (*dto.CreateHelpRequestResponse, error) {
	request := &models.HelpRequest{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Category:      req.Category,
		UrgencyLevel:  models.UrgencyLevel(req.UrgencyLevel),
		CreatedBy:     userID,
		CreatedByRole: userRole,
	}

	if err := s.helpRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info().Int64("helpRequestID", request.ID).Int64("userID", userID).Msg("Help request created")

	return &dto.CreateHelpRequestResponse{
		Message:     "Help request created successfully",
		HelpRequest: *request,
	}, nil
}

// GetAllHelpRequests lists help requests with filters and pagination.
// Comments for the whole page are fetched in one query and grouped
// here, with creator names resolved in a second batch.
func (s *communityHelpServiceImpl) GetAllHelpRequests(ctx context.Context, filter dto.HelpRequestFilter) (*dto.HelpRequestListResponse, error) {
	requests, totalItems, err := s.helpRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	requestIDs := make([]int64, 0, len(requests))
	creatorIDs := make([]int64, 0, len(requests))
	for i := range requests {
		requestIDs = append(requestIDs, requests[i].ID)
		creatorIDs = append(creatorIDs, requests[i].CreatedBy)
	}

	comments, err := s.helpRepo.GetCommentsByRequestIDs(ctx, requestIDs)
	if err != nil {
		return nil, err
	}

	names, err := s.userNames.GetNamesByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.HelpRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, dto.HelpRequestResponse{
			HelpRequest: requests[i],
			CreatorName: names[requests[i].CreatedBy],
			Comments:    emptyIfNilComments(comments[requests[i].ID]),
		})
	}

	var pagination dto.Pagination
	if filter.All {
		pagination = helpers.NewAllPagination(totalItems)
	} else {
		pagination = helpers.NewPagination(totalItems, filter.Page, filter.Limit)
	}

	return &dto.HelpRequestListResponse{
		Pagination:   pagination,
		HelpRequests: responses,
	}, nil
}

// GetHelpRequestByID returns one help request with its comments.
func (s *communityHelpServiceImpl) GetHelpRequestByID(ctx context.Context, id int64) (*dto.HelpRequestResponse, error) {
	request, err := s.helpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.helpRepo.GetCommentsByRequestIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}

	names, err := s.userNames.GetNamesByIDs(ctx, []int64{request.CreatedBy})
	if err != nil {
		return nil, err
	}

	return &dto.HelpRequestResponse{
		HelpRequest: *request,
		CreatorName: names[request.CreatedBy],
		Comments:    emptyIfNilComments(comments[id]),
	}, nil
}

// AddComment adds a comment to a help request. A helper comment bumps
// the request's helper counter atomically with the insert.
func (s *communityHelpServiceImpl) AddComment(ctx context.Context, requestID, userID int64, userRole string, req *dto.AddCommentRequest) (*dto.AddCommentResponse, error) {
	if _, err := s.helpRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}

	comment := &models.HelpComment{
		HelpRequestID: requestID,
		CommentText:   req.CommentText,
		CreatedBy:     userID,
		CreatedByRole: userRole,
		IsHelper:      req.IsHelper,
	}

	if err := s.helpRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	names, err := s.userNames.GetNamesByIDs(ctx, []int64{userID})
	if err != nil {
		return nil, err
	}

	return &dto.AddCommentResponse{
		Message: "Comment added successfully",
		Comment: dto.CommentResponse{
			HelpComment:   *comment,
			CommenterName: names[userID],
		},
	}, nil
}

// GetComments lists the comments of one help request, newest first.
func (s *communityHelpServiceImpl) GetComments(ctx context.Context, requestID int64) (*dto.CommentListResponse, error) {
	if _, err := s.helpRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}

	comments, err := s.helpRepo.GetCommentsByRequestIDs(ctx, []int64{requestID})
	if err != nil {
		return nil, err
	}

	return &dto.CommentListResponse{
		HelpRequestID: requestID,
		Comments:      emptyIfNilComments(comments[requestID]),
	}, nil
}

// UpdateStatus transitions a help request's status. Only the creator
// may change it.
func (s *communityHelpServiceImpl) UpdateStatus(ctx context.Context, requestID, userID int64, req *dto.UpdateStatusRequest) (*dto.UpdateStatusResponse, error) {
	request, err := s.helpRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.CreatedBy != userID {
		return nil, apperrors.ErrNotRequestCreator
	}

	updated, err := s.helpRepo.UpdateStatus(ctx, requestID, models.HelpRequestStatus(req.Status))
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("helpRequestID", requestID).Str("status", req.Status).Msg("Help request status updated")

	return &dto.UpdateStatusResponse{
		Message:     "Status updated successfully",
		HelpRequest: *updated,
	}, nil
}

func emptyIfNilComments(comments []dto.CommentResponse) []dto.CommentResponse {
	if comments == nil {
		return []dto.CommentResponse{}
	}
	return comments
}

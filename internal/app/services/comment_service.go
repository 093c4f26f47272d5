package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	CreateComment(ctx context.Context, userID, postID int64, req dto.CommentRequest) (*dto.CommentResponse, error)
}

type commentServiceImpl struct {
	commentRepo         repositories.ICommentRepository
	postRepo            repositories.IPostRepository
	forumRepo           repositories.IForumRepository
	userRepo            repositories.IUserRepository
	forumService        ForumService
	notificationService NotificationService
}

// NewCommentService creates a new comment service instance
func NewCommentService(
	commentRepo repositories.ICommentRepository,
	postRepo repositories.IPostRepository,
	forumRepo repositories.IForumRepository,
	userRepo repositories.IUserRepository,
	forumService ForumService,
	notificationService NotificationService,
) CommentService {
	return &commentServiceImpl{
		commentRepo:         commentRepo,
		postRepo:            postRepo,
		forumRepo:           forumRepo,
		userRepo:            userRepo,
		forumService:        forumService,
		notificationService: notificationService,
	}
}

// CreateComment creates a comment on a post, optionally as a reply to
// another comment on the same post. Comments by professors are pinned on
// creation; officials' comments trigger notification dispatch after the
// comment is stored.
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID, postID int64, req dto.CommentRequest) (*dto.CommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	forum, err := s.forumRepo.GetByID(ctx, post.ForumID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.forumService.CanAccess(ctx, user, forum)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrCommentNotFound) {
				return nil, apperrors.ErrParentCommentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperrors.ErrParentCommentMismatch
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: userID,
		ParentID: req.ParentID,
		Content:  req.Content,
		Pinned:   user.Role == models.RoleProfessor,
		Author:   user,
	}
	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	logger.Info().Int64("commentID", comment.ID).Int64("postID", postID).Int64("authorID", userID).
		Msg("Comment created")

	for _, target := range dispatchTargets(user, post, parent) {
		if err := s.notificationService.Notify(ctx, target.RecipientID, target.Type, target.Message, post.ID); err != nil {
			// The comment is already stored. A failed notification must not
			// fail the request.
			logger.Error().Err(err).Int64("recipientID", target.RecipientID).
				Msg("Failed to create notification")
		}
	}

	return &dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    ProjectAuthor(user),
		PostID:    comment.PostID,
		Timestamp: comment.Timestamp,
		Pinned:    comment.Pinned,
		Score:     comment.Score,
		ParentID:  comment.ParentID,
		Replies:   []dto.CommentResponse{},
	}, nil
}

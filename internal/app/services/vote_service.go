package services

import (
	"context"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
)

// VoteService defines the interface for vote operations
type VoteService interface {
	VotePost(ctx context.Context, userID, postID int64, value int) (*dto.VoteResponse, error)
	VoteComment(ctx context.Context, userID, commentID int64, value int) (*dto.VoteResponse, error)
}

type voteServiceImpl struct {
	voteRepo     repositories.IVoteRepository
	postRepo     repositories.IPostRepository
	commentRepo  repositories.ICommentRepository
	forumRepo    repositories.IForumRepository
	userRepo     repositories.IUserRepository
	forumService ForumService
}

// NewVoteService creates a new vote service instance
func NewVoteService(
	voteRepo repositories.IVoteRepository,
	postRepo repositories.IPostRepository,
	commentRepo repositories.ICommentRepository,
	forumRepo repositories.IForumRepository,
	userRepo repositories.IUserRepository,
	forumService ForumService,
) VoteService {
	return &voteServiceImpl{
		voteRepo:     voteRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		forumRepo:    forumRepo,
		userRepo:     userRepo,
		forumService: forumService,
	}
}

// VotePost applies a vote to a post
func (s *voteServiceImpl) VotePost(ctx context.Context, userID, postID int64, value int) (*dto.VoteResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.checkForumAccess(ctx, userID, post.ForumID); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, models.VoteTargetPost, postID, value)
}

// VoteComment applies a vote to a comment
func (s *voteServiceImpl) VoteComment(ctx context.Context, userID, commentID int64, value int) (*dto.VoteResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return nil, err
	}
	if err := s.checkForumAccess(ctx, userID, post.ForumID); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, models.VoteTargetComment, commentID, value)
}

func (s *voteServiceImpl) checkForumAccess(ctx context.Context, userID, forumID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return err
	}
	allowed, err := s.forumService.CanAccess(ctx, user, forum)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func (s *voteServiceImpl) apply(ctx context.Context, userID int64, target models.VoteTarget, targetID int64, value int) (*dto.VoteResponse, error) {
	result, err := s.voteRepo.Apply(ctx, userID, target, targetID, value)
	if err != nil {
		return nil, err
	}
	return &dto.VoteResponse{
		TargetID: targetID,
		Value:    result.Outcome.Value,
		Score:    result.Score,
	}, nil
}

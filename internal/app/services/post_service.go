package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// PostService defines the interface for post operations
type PostService interface {
	CreatePost(ctx context.Context, userID, forumID int64, req dto.PostRequest) (*dto.PostResponse, error)
	GetPostsByForum(ctx context.Context, userID, forumID int64) ([]dto.PostResponse, error)
	GetPostByID(ctx context.Context, userID, postID int64) (*dto.PostResponse, error)
}

type postServiceImpl struct {
	postRepo     repositories.IPostRepository
	commentRepo  repositories.ICommentRepository
	forumRepo    repositories.IForumRepository
	userRepo     repositories.IUserRepository
	forumService ForumService
}

// NewPostService creates a new post service instance
func NewPostService(
	postRepo repositories.IPostRepository,
	commentRepo repositories.ICommentRepository,
	forumRepo repositories.IForumRepository,
	userRepo repositories.IUserRepository,
	forumService ForumService,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		forumRepo:    forumRepo,
		userRepo:     userRepo,
		forumService: forumService,
	}
}

func toPostResponse(post *models.Post, comments []*models.Comment) dto.PostResponse {
	return dto.PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    ProjectAuthor(post.Author),
		ForumID:   post.ForumID,
		Timestamp: post.Timestamp,
		Pinned:    post.Pinned,
		Score:     post.Score,
		Comments:  ComposeCommentTree(comments),
	}
}

// CreatePost creates a post in a forum the user can access. Posts by
// professors are pinned on creation.
func (s *postServiceImpl) CreatePost(ctx context.Context, userID, forumID int64, req dto.PostRequest) (*dto.PostResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	forum, err := s.forumRepo.GetByID(ctx, forumID)
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

	post := &models.Post{
		ForumID:  forumID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Pinned:   user.Role == models.RoleProfessor,
		Author:   user,
	}
	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	logger.Info().Int64("postID", post.ID).Int64("forumID", forumID).Int64("authorID", userID).
		Msg("Post created")

	resp := toPostResponse(post, nil)
	return &resp, nil
}

// GetPostsByForum returns the display-ready feed of a forum: posts ranked
// pinned first, then by score, newest first among ties, each with its
// composed comment forest and projected authors.
func (s *postServiceImpl) GetPostsByForum(ctx context.Context, userID, forumID int64) ([]dto.PostResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	forum, err := s.forumRepo.GetByID(ctx, forumID)
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

	posts, err := s.postRepo.GetByForumID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, post := range posts {
		comments, err := s.commentRepo.GetByPostID(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toPostResponse(post, comments))
	}
	return responses, nil
}

// GetPostByID retrieves a single post with its comment forest
func (s *postServiceImpl) GetPostByID(ctx context.Context, userID, postID int64) (*dto.PostResponse, error) {
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

	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	resp := toPostResponse(post, comments)
	return &resp, nil
}

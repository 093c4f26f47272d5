package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
)

type stubPostRepo struct {
	repositories.IPostRepository
	posts map[int64]*models.Post
}

func (s *stubPostRepo) Create(_ context.Context, post *models.Post) (int64, error) {
	post.ID = int64(len(s.posts) + 1)
	post.Timestamp = time.Now()
	s.posts[post.ID] = post
	return post.ID, nil
}

func (s *stubPostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}

func newPostService() (PostService, *stubPostRepo, *stubForumRepo, *stubCommentRepo) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	postRepo := &stubPostRepo{posts: map[int64]*models.Post{}}
	commentRepo := &stubCommentRepo{comments: map[int64]*models.Comment{}}
	forumService := NewForumService(forumRepo, courseRepo, userRepo)
	return NewPostService(postRepo, commentRepo, forumRepo, userRepo, forumService), postRepo, forumRepo, commentRepo
}

func TestCreatePost_ProfessorPinned(t *testing.T) {
	service, _, _, _ := newPostService()

	// Forum 4 is owned by professor 10.
	resp, err := service.CreatePost(context.Background(), 10, 4, dto.PostRequest{
		Title:   "Exam schedule",
		Content: "The exam takes place in June.",
	})
	require.NoError(t, err)
	assert.True(t, resp.Pinned)
}

func TestCreatePost_AdminNotPinned(t *testing.T) {
	service, _, _, _ := newPostService()

	resp, err := service.CreatePost(context.Background(), 1, 1, dto.PostRequest{
		Title:   "Maintenance window",
		Content: "The platform goes down on Saturday.",
	})
	require.NoError(t, err)
	assert.False(t, resp.Pinned)
}

func TestCreatePost_StudentNotPinned(t *testing.T) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	courseRepo.enrollment[[2]int64{20, 1}] = true
	postRepo := &stubPostRepo{posts: map[int64]*models.Post{}}
	commentRepo := &stubCommentRepo{comments: map[int64]*models.Comment{}}
	forumService := NewForumService(forumRepo, courseRepo, userRepo)
	service := NewPostService(postRepo, commentRepo, forumRepo, userRepo, forumService)

	resp, err := service.CreatePost(context.Background(), 20, 1, dto.PostRequest{
		Title:   "Question about limits",
		Content: "How does the epsilon-delta definition work?",
	})
	require.NoError(t, err)
	assert.False(t, resp.Pinned)
}

func TestCreatePost_DeniedWithoutAccess(t *testing.T) {
	service, _, _, _ := newPostService()

	// Student 21 has no enrollment, group or grant.
	_, err := service.CreatePost(context.Background(), 21, 1, dto.PostRequest{
		Title:   "Hello",
		Content: "First post",
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreatePost_EmptyTitleRejected(t *testing.T) {
	service, _, _, _ := newPostService()

	_, err := service.CreatePost(context.Background(), 1, 1, dto.PostRequest{
		Title:   "   ",
		Content: "Body",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

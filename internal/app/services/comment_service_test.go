package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
)

type stubCommentRepo struct {
	repositories.ICommentRepository
	comments map[int64]*models.Comment
	getErr   error
}

func (s *stubCommentRepo) Create(_ context.Context, comment *models.Comment) (int64, error) {
	comment.ID = int64(len(s.comments) + 1)
	comment.Timestamp = time.Now()
	s.comments[comment.ID] = comment
	return comment.ID, nil
}

func (s *stubCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	comment, ok := s.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return comment, nil
}

type stubNotifier struct {
	NotificationService
	notified []int64
}

func (s *stubNotifier) Notify(_ context.Context, recipientID int64, _, _ string, _ int64) error {
	s.notified = append(s.notified, recipientID)
	return nil
}

func newCommentService() (CommentService, *stubCommentRepo, *stubPostRepo, *stubNotifier) {
	forumRepo, courseRepo, userRepo := newVisibilityFixture()
	courseRepo.enrollment[[2]int64{20, 1}] = true
	postRepo := &stubPostRepo{posts: map[int64]*models.Post{}}
	commentRepo := &stubCommentRepo{comments: map[int64]*models.Comment{}}
	notifier := &stubNotifier{}
	forumService := NewForumService(forumRepo, courseRepo, userRepo)
	service := NewCommentService(commentRepo, postRepo, forumRepo, userRepo, forumService, notifier)

	// A student post in the course 1 main forum.
	postRepo.posts[1] = &models.Post{
		ID:       1,
		ForumID:  1,
		AuthorID: 20,
		Title:    "Question about limits",
		Author:   &models.User{ID: 20, Nickname: "al1ce", Role: models.RoleStudent},
	}
	return service, commentRepo, postRepo, notifier
}

func TestCreateComment_AdminNotPinned(t *testing.T) {
	service, _, _, _ := newCommentService()

	resp, err := service.CreateComment(context.Background(), 1, 1, dto.CommentRequest{
		Content: "Please keep this thread on topic.",
	})
	require.NoError(t, err)
	assert.False(t, resp.Pinned)
}

func TestCreateComment_StudentNotPinned(t *testing.T) {
	service, _, _, _ := newCommentService()

	resp, err := service.CreateComment(context.Background(), 20, 1, dto.CommentRequest{
		Content: "I had the same question.",
	})
	require.NoError(t, err)
	assert.False(t, resp.Pinned)
}

func TestCreateComment_ProfessorPinnedOnOwnedForum(t *testing.T) {
	service, _, postRepo, _ := newCommentService()

	// A post in forum 4, which professor 10 owns.
	postRepo.posts[2] = &models.Post{
		ID:       2,
		ForumID:  4,
		AuthorID: 20,
		Title:    "Homework 3",
		Author:   &models.User{ID: 20, Nickname: "al1ce", Role: models.RoleStudent},
	}

	resp, err := service.CreateComment(context.Background(), 10, 2, dto.CommentRequest{
		Content: "The deadline is extended by a week.",
	})
	require.NoError(t, err)
	assert.True(t, resp.Pinned)
}

func TestCreateComment_UnknownParent(t *testing.T) {
	service, _, _, _ := newCommentService()

	_, err := service.CreateComment(context.Background(), 20, 1, dto.CommentRequest{
		Content:  "Replying",
		ParentID: ptr(99),
	})
	assert.ErrorIs(t, err, apperrors.ErrParentCommentNotFound)
}

func TestCreateComment_ParentLookupFailurePropagates(t *testing.T) {
	service, commentRepo, _, _ := newCommentService()
	commentRepo.getErr = errors.New("connection reset")

	_, err := service.CreateComment(context.Background(), 20, 1, dto.CommentRequest{
		Content:  "Replying",
		ParentID: ptr(1),
	})
	require.Error(t, err)
	// Infrastructure failures must not masquerade as a missing parent.
	assert.NotErrorIs(t, err, apperrors.ErrParentCommentNotFound)
}

func TestCreateComment_ParentFromOtherPost(t *testing.T) {
	service, commentRepo, postRepo, _ := newCommentService()

	postRepo.posts[2] = &models.Post{
		ID:       2,
		ForumID:  1,
		AuthorID: 20,
		Author:   &models.User{ID: 20, Nickname: "al1ce", Role: models.RoleStudent},
	}
	commentRepo.comments[1] = &models.Comment{ID: 1, PostID: 2, AuthorID: 20}

	_, err := service.CreateComment(context.Background(), 20, 1, dto.CommentRequest{
		Content:  "Replying",
		ParentID: ptr(1),
	})
	assert.ErrorIs(t, err, apperrors.ErrParentCommentMismatch)
}

func TestCreateComment_OfficialCommentNotifiesPostAuthor(t *testing.T) {
	service, _, _, notifier := newCommentService()

	_, err := service.CreateComment(context.Background(), 1, 1, dto.CommentRequest{
		Content: "Good question, see chapter 2.",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, notifier.notified)
}

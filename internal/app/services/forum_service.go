package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// ForumService defines the interface for forum visibility and lifecycle
// operations.
type ForumService interface {
	GetForumsForUser(ctx context.Context, userID int64) ([]dto.ForumResponse, error)
	GetForumByID(ctx context.Context, userID, forumID int64) (*dto.ForumResponse, error)
	CanAccess(ctx context.Context, user *models.User, forum *models.Forum) (bool, error)
	EnsureMainCourseForum(ctx context.Context, courseID int64) (*models.Forum, error)
	EnsureGroupSubforum(ctx context.Context, courseID int64, groupName string) (*models.Forum, error)
	InitializeForums(ctx context.Context) error
	GrantAccess(ctx context.Context, forumID, userID int64) error
	AssignProfessor(ctx context.Context, forumID, professorID int64) error
	RemoveProfessor(ctx context.Context, forumID int64) error
}

type forumServiceImpl struct {
	forumRepo  repositories.IForumRepository
	courseRepo repositories.ICourseRepository
	userRepo   repositories.IUserRepository
}

// NewForumService creates a new forum service instance
func NewForumService(forumRepo repositories.IForumRepository, courseRepo repositories.ICourseRepository, userRepo repositories.IUserRepository) ForumService {
	return &forumServiceImpl{
		forumRepo:  forumRepo,
		courseRepo: courseRepo,
		userRepo:   userRepo,
	}
}

func toForumResponse(forum *models.Forum) dto.ForumResponse {
	resp := dto.ForumResponse{
		ID:          forum.ID,
		CourseID:    forum.CourseID,
		GroupName:   forum.GroupName,
		Type:        string(forum.Type),
		ProfessorID: forum.ProfessorID,
		CreatedAt:   forum.CreatedAt,
	}
	if forum.Course != nil {
		resp.CourseName = forum.Course.Name
	}
	return resp
}

// GetForumsForUser resolves the set of forums visible to a user. Admins see
// everything, professors see the forums they own, students see the union of
// their enrolled courses' main forums, the group subforums matching their
// own study group, and any forums they were explicitly granted. The union
// is deduplicated by forum ID.
func (s *forumServiceImpl) GetForumsForUser(ctx context.Context, userID int64) ([]dto.ForumResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var forums []*models.Forum
	switch user.Role {
	case models.RoleAdmin:
		forums, err = s.forumRepo.GetAll(ctx)
	case models.RoleProfessor:
		forums, err = s.forumRepo.GetByProfessorID(ctx, user.ID)
	default:
		forums, err = s.resolveStudentForums(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving visible forums: %w", err)
	}

	seen := make(map[int64]bool, len(forums))
	responses := make([]dto.ForumResponse, 0, len(forums))
	for _, forum := range forums {
		if seen[forum.ID] {
			continue
		}
		seen[forum.ID] = true
		responses = append(responses, toForumResponse(forum))
	}
	return responses, nil
}

func (s *forumServiceImpl) resolveStudentForums(ctx context.Context, user *models.User) ([]*models.Forum, error) {
	courses, err := s.courseRepo.GetEnrolledCourses(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	forums, err := s.forumRepo.GetMainForumsForCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	if user.GroupName != nil && *user.GroupName != "" {
		subforums, err := s.forumRepo.GetGroupSubforumsForCourses(ctx, courseIDs, *user.GroupName)
		if err != nil {
			return nil, err
		}
		forums = append(forums, subforums...)
	}

	granted, err := s.forumRepo.GetGrantedForums(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	forums = append(forums, granted...)

	return forums, nil
}

// GetForumByID retrieves a forum if it is visible to the user
func (s *forumServiceImpl) GetForumByID(ctx context.Context, userID, forumID int64) (*dto.ForumResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	forum, err := s.forumRepo.GetByID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanAccess(ctx, user, forum)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := toForumResponse(forum)
	return &resp, nil
}

// CanAccess reports whether a user may read and write in a forum. The rules
// mirror GetForumsForUser: admins everywhere, professors only in forums
// they own, students in forums their enrollment, group or an explicit grant
// covers.
func (s *forumServiceImpl) CanAccess(ctx context.Context, user *models.User, forum *models.Forum) (bool, error) {
	switch user.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleProfessor:
		return forum.ProfessorID != nil && *forum.ProfessorID == user.ID, nil
	}

	granted, err := s.forumRepo.HasGrant(ctx, forum.ID, user.ID)
	if err != nil {
		return false, err
	}
	if granted {
		return true, nil
	}

	if forum.CourseID == nil {
		return false, nil
	}
	enrolled, err := s.courseRepo.IsEnrolled(ctx, user.ID, *forum.CourseID)
	if err != nil {
		return false, err
	}
	if !enrolled {
		return false, nil
	}

	switch forum.Type {
	case models.ForumMainCourse:
		return true, nil
	case models.ForumGroupSubforum:
		return forum.GroupName != nil && user.GroupName != nil && *forum.GroupName == *user.GroupName, nil
	}
	return false, nil
}

// EnsureMainCourseForum materializes the main forum of a course if it does
// not exist yet. Safe to call repeatedly.
func (s *forumServiceImpl) EnsureMainCourseForum(ctx context.Context, courseID int64) (*models.Forum, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.forumRepo.CreateIfMissing(ctx, &models.Forum{
		CourseID: &courseID,
		Type:     models.ForumMainCourse,
	})
}

// EnsureGroupSubforum materializes the subforum for a (course, group) pair
// if it does not exist yet. The partial unique index makes concurrent calls
// converge on the same row, so an existing forum is a silent no-op.
func (s *forumServiceImpl) EnsureGroupSubforum(ctx context.Context, courseID int64, groupName string) (*models.Forum, error) {
	if groupName == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", apperrors.ErrValidationFailed)
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.forumRepo.CreateIfMissing(ctx, &models.Forum{
		CourseID:  &courseID,
		GroupName: &groupName,
		Type:      models.ForumGroupSubforum,
	})
}

// InitializeForums materializes a main forum for every course that lacks one
func (s *forumServiceImpl) InitializeForums(ctx context.Context) error {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading courses: %w", err)
	}
	for _, course := range courses {
		if _, err := s.forumRepo.CreateIfMissing(ctx, &models.Forum{
			CourseID: &course.ID,
			Type:     models.ForumMainCourse,
		}); err != nil {
			return fmt.Errorf("error materializing forum for course %d: %w", course.ID, err)
		}
	}
	return nil
}

// GrantAccess gives a user explicit access to a forum
func (s *forumServiceImpl) GrantAccess(ctx context.Context, forumID, userID int64) error {
	if _, err := s.forumRepo.GetByID(ctx, forumID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.forumRepo.GrantAccess(ctx, forumID, userID)
}

// AssignProfessor sets a professor as the owner of a forum. Assigning a
// user that is not a professor is rejected.
func (s *forumServiceImpl) AssignProfessor(ctx context.Context, forumID, professorID int64) error {
	professor, err := s.userRepo.GetByID(ctx, professorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	if professor.Role != models.RoleProfessor {
		return fmt.Errorf("%w: user %d is not a professor", apperrors.ErrInvalidRoleOperation, professorID)
	}

	if err := s.forumRepo.SetProfessor(ctx, forumID, &professorID); err != nil {
		return err
	}
	logger.Info().Int64("forumID", forumID).Int64("professorID", professorID).Msg("Forum professor assigned")
	return nil
}

// RemoveProfessor clears a forum's owning professor
func (s *forumServiceImpl) RemoveProfessor(ctx context.Context, forumID int64) error {
	return s.forumRepo.SetProfessor(ctx, forumID, nil)
}

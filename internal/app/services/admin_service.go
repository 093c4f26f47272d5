package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
	"github.com/uniforum/uniforum/internal/app/repositories"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/auth"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// Professor accounts created from the registry start with this password
// and are expected to change it after the first sign-in.
const defaultProfessorPassword = "ChangeMe123!"

// AdminService defines the interface for administrative operations
type AdminService interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	VerifyUser(ctx context.Context, userID int64) error
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	GetProfessors(ctx context.Context) ([]*models.User, error)
	GetGroupNames(ctx context.Context) ([]string, error)
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	EnrollStudent(ctx context.Context, userID, courseID int64) error
	RemoveStudentFromCourse(ctx context.Context, userID, courseID int64) error
	MoveStudentToGroup(ctx context.Context, userID int64, groupName string) error
	SyncProfessors(ctx context.Context) error
}

type adminServiceImpl struct {
	userRepo       repositories.IUserRepository
	universityRepo repositories.IUniversityRepository
	courseRepo     repositories.ICourseRepository
	forumService   ForumService
}

// NewAdminService creates a new admin service instance
func NewAdminService(
	userRepo repositories.IUserRepository,
	universityRepo repositories.IUniversityRepository,
	courseRepo repositories.ICourseRepository,
	forumService ForumService,
) AdminService {
	return &adminServiceImpl{
		userRepo:       userRepo,
		universityRepo: universityRepo,
		courseRepo:     courseRepo,
		forumService:   forumService,
	}
}

// GetAllUsers retrieves all user accounts
func (s *adminServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// VerifyUser marks a pending account as verified
func (s *adminServiceImpl) VerifyUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetVerified(ctx, userID, true); err != nil {
		return err
	}
	logger.Info().Int64("userID", userID).Msg("User verified by admin")
	return nil
}

// UpdateUser updates a user's profile and university association. When a
// student's group changes, the subforums for their enrolled courses are
// materialized so the new group has somewhere to post.
func (s *adminServiceImpl) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role := models.RoleType(req.Role)
	switch role {
	case models.RoleStudent, models.RoleProfessor, models.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, req.Role)
	}

	groupChanged := req.GroupName != nil &&
		(user.GroupName == nil || *user.GroupName != *req.GroupName)

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Nickname = req.Nickname
	user.Role = role
	user.GroupName = req.GroupName
	user.StudyYear = req.StudyYear
	user.Semester = req.Semester
	user.Verified = req.Verified

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if groupChanged && user.Role == models.RoleStudent {
		if err := s.materializeSubforums(ctx, user.ID, *req.GroupName); err != nil {
			logger.Error().Err(err).Int64("userID", userID).Msg("Failed to materialize subforums after group change")
		}
	}

	return user, nil
}

// DeleteUser removes a user account
func (s *adminServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	logger.Info().Int64("userID", userID).Msg("User deleted by admin")
	return nil
}

// GetProfessors retrieves all professor accounts
func (s *adminServiceImpl) GetProfessors(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetByRole(ctx, models.RoleProfessor)
}

// GetGroupNames retrieves the study group names known to the registry
func (s *adminServiceImpl) GetGroupNames(ctx context.Context) ([]string, error) {
	return s.universityRepo.GetGroupNames(ctx)
}

// CreateCourse creates a course and materializes its main forum
func (s *adminServiceImpl) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:        req.Name,
		Year:        req.Year,
		Semester:    req.Semester,
		Description: req.Description,
	}
	if _, err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	if _, err := s.forumService.EnsureMainCourseForum(ctx, course.ID); err != nil {
		return nil, fmt.Errorf("error materializing course forum: %w", err)
	}

	logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// GetAllCourses retrieves all courses
func (s *adminServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// EnrollStudent enrolls a student in a course. The student's group subforum
// for that course is materialized when the student belongs to a group.
func (s *adminServiceImpl) EnrollStudent(ctx context.Context, userID, courseID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleStudent {
		return fmt.Errorf("%w: user %d is not a student", apperrors.ErrInvalidRoleOperation, userID)
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.Enroll(ctx, userID, courseID); err != nil {
		return err
	}

	if user.GroupName != nil && *user.GroupName != "" {
		if _, err := s.forumService.EnsureGroupSubforum(ctx, courseID, *user.GroupName); err != nil {
			return err
		}
	}
	return nil
}

// RemoveStudentFromCourse removes a student's enrollment
func (s *adminServiceImpl) RemoveStudentFromCourse(ctx context.Context, userID, courseID int64) error {
	return s.courseRepo.RemoveEnrollment(ctx, userID, courseID)
}

// MoveStudentToGroup moves a student to a different study group and
// materializes the group's subforums across the student's courses.
func (s *adminServiceImpl) MoveStudentToGroup(ctx context.Context, userID int64, groupName string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleStudent {
		return fmt.Errorf("%w: user %d is not a student", apperrors.ErrInvalidRoleOperation, userID)
	}

	if err := s.userRepo.UpdateGroup(ctx, userID, groupName); err != nil {
		return err
	}
	if err := s.materializeSubforums(ctx, userID, groupName); err != nil {
		return err
	}

	logger.Info().Int64("userID", userID).Str("group", groupName).Msg("Student moved to group")
	return nil
}

func (s *adminServiceImpl) materializeSubforums(ctx context.Context, userID int64, groupName string) error {
	courses, err := s.courseRepo.GetEnrolledCourses(ctx, userID)
	if err != nil {
		return err
	}
	for _, course := range courses {
		if _, err := s.forumService.EnsureGroupSubforum(ctx, course.ID, groupName); err != nil {
			return err
		}
	}
	return nil
}

// SyncProfessors creates verified professor accounts for registry
// professors that have none yet. Existing accounts are left untouched.
func (s *adminServiceImpl) SyncProfessors(ctx context.Context) error {
	professors, err := s.universityRepo.GetAllProfessors(ctx)
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(defaultProfessorPassword)
	if err != nil {
		return fmt.Errorf("error hashing default password: %w", err)
	}

	for _, record := range professors {
		exists, err := s.userRepo.EmailExists(ctx, record.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		user := &models.User{
			Email:     record.Email,
			Password:  hashed,
			FirstName: record.FirstName,
			LastName:  record.LastName,
			Nickname:  record.Email,
			Role:      models.RoleProfessor,
			Verified:  true,
		}
		if _, err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				continue
			}
			return err
		}
		logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Professor account created from registry")
	}
	return nil
}

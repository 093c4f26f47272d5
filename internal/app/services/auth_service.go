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
	"github.com/uniforum/uniforum/internal/pkg/email"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.JwtResponse, error)
}

type authServiceImpl struct {
	userRepo       repositories.IUserRepository
	universityRepo repositories.IUniversityRepository
	courseRepo     repositories.ICourseRepository
	forumService   ForumService
	jwtService     *auth.JWTService
	emailService   email.EmailService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo repositories.IUserRepository,
	universityRepo repositories.IUniversityRepository,
	courseRepo repositories.ICourseRepository,
	forumService ForumService,
	jwtService *auth.JWTService,
	emailService email.EmailService,
) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		universityRepo: universityRepo,
		courseRepo:     courseRepo,
		forumService:   forumService,
		jwtService:     jwtService,
		emailService:   emailService,
	}
}

// Register creates a new student account. If the email matches a student
// record in the university registry the account is verified immediately,
// linked to the courses of the student's year and semester, and the group
// subforums for those courses are materialized. Otherwise the account stays
// unverified until an administrator approves it.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	taken, err := s.userRepo.NicknameExists(ctx, req.Nickname)
	if err != nil {
		return nil, fmt.Errorf("error checking nickname: %w", err)
	}
	if taken {
		return nil, apperrors.ErrNicknameTaken
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Nickname:  req.Nickname,
		Role:      models.RoleStudent,
	}

	record, err := s.universityRepo.GetStudentByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("error checking university registry: %w", err)
	}
	if record != nil {
		user.Verified = true
		user.GroupName = &record.GroupName
		user.StudyYear = &record.Year
		user.Semester = &record.Semester
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if record != nil {
		if err := s.linkToCourses(ctx, user); err != nil {
			// The account exists and the student can be linked again at the
			// next login sync, so a linking failure is not fatal here.
			logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to link student to courses")
		}
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		}
	} else {
		if err := s.emailService.SendVerificationEmail(user.Email, user.FirstName); err != nil {
			logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
		}
	}

	logger.Info().Int64("userID", user.ID).Bool("verified", user.Verified).Msg("User registered")
	return user, nil
}

// linkToCourses enrolls a student in every course of their year and
// semester and materializes the matching group subforums.
func (s *authServiceImpl) linkToCourses(ctx context.Context, user *models.User) error {
	if user.StudyYear == nil || user.Semester == nil {
		return nil
	}

	courses, err := s.courseRepo.GetByYearSemester(ctx, *user.StudyYear, *user.Semester)
	if err != nil {
		return err
	}

	for _, course := range courses {
		if err := s.courseRepo.Enroll(ctx, user.ID, course.ID); err != nil {
			return err
		}
		if user.GroupName != nil && *user.GroupName != "" {
			if _, err := s.forumService.EnsureGroupSubforum(ctx, course.ID, *user.GroupName); err != nil {
				return err
			}
		}
	}
	return nil
}

// Login authenticates a user and returns a signed token. Student accounts
// are synchronized against the university registry first so that group or
// semester changes made by the administration take effect at the next
// sign-in.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.JwtResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Role == models.RoleStudent {
		if err := s.syncStudentData(ctx, user); err != nil {
			logger.Warn().Err(err).Int64("userID", user.ID).Msg("Student registry sync failed")
		}
	}

	if !user.Verified {
		return nil, apperrors.ErrAccountNotVerified
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.JwtResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		Nickname:  user.Nickname,
		GroupName: user.GroupName,
		StudyYear: user.StudyYear,
		Semester:  user.Semester,
	}, nil
}

// syncStudentData refreshes a student account from the university registry.
// A changed group or semester updates the account, re-links courses and
// materializes any missing subforums. A registry match also verifies an
// account that was still pending.
func (s *authServiceImpl) syncStudentData(ctx context.Context, user *models.User) error {
	record, err := s.universityRepo.GetStudentByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil
		}
		return err
	}

	changed := !user.Verified ||
		user.GroupName == nil || *user.GroupName != record.GroupName ||
		user.StudyYear == nil || *user.StudyYear != record.Year ||
		user.Semester == nil || *user.Semester != record.Semester
	if !changed {
		return nil
	}

	user.Verified = true
	user.GroupName = &record.GroupName
	user.StudyYear = &record.Year
	user.Semester = &record.Semester

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.linkToCourses(ctx, user); err != nil {
		return err
	}

	logger.Info().Int64("userID", user.ID).Msg("Student data synchronized from registry")
	return nil
}

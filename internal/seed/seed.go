package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/uniforum/uniforum/internal/app/models"
	appRepos "github.com/uniforum/uniforum/internal/app/repositories"
	appServices "github.com/uniforum/uniforum/internal/app/services"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// defaultCourses is the course catalogue materialized on first startup.
var defaultCourses = []appModels.Course{
	{Name: "Calculus I", Year: 1, Semester: 1, Description: "Limits, derivatives and integrals"},
	{Name: "Introduction to Programming", Year: 1, Semester: 1, Description: "Programming fundamentals"},
	{Name: "Linear Algebra", Year: 1, Semester: 2, Description: "Vector spaces and linear maps"},
	{Name: "Data Structures", Year: 2, Semester: 1, Description: "Lists, trees, graphs and their algorithms"},
	{Name: "Operating Systems", Year: 2, Semester: 2, Description: "Processes, memory and file systems"},
}

// defaultProfessors is the university registry roster of teaching staff.
var defaultProfessors = []appModels.UniversityProfessor{
	{Email: "e.meier@uni.edu", FirstName: "Eva", LastName: "Meier", Department: "Mathematics"},
	{Email: "j.novak@uni.edu", FirstName: "Jan", LastName: "Novak", Department: "Computer Science"},
}

// defaultStudents is the university registry roster of enrolled students.
// Accounts registering with one of these emails are auto-verified.
var defaultStudents = []appModels.UniversityStudent{
	{Email: "alice@uni.edu", Year: 1, Semester: 1, GroupName: "Group A"},
	{Email: "bob@uni.edu", Year: 1, Semester: 1, GroupName: "Group B"},
	{Email: "carol@uni.edu", Year: 2, Semester: 1, GroupName: "Group A"},
}

// CreateDefaultData seeds the admin account, the university registry and
// the course catalogue if they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	universityRepo := appRepos.NewUniversityRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)
	forumRepo := appRepos.NewForumRepository(dbPool)
	forumService := appServices.NewForumService(forumRepo, courseRepo, userRepo)

	lgr.Info().Msg("Checking/Creating default data (admin, registry, courses)...")
	var finalErr error

	// --- Default admin user --- //
	exists, err := userRepo.EmailExists(ctx, "admin@uniforum.edu")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Email:     "admin@uniforum.edu",
				Password:  string(hashedPassword),
				FirstName: "System",
				LastName:  "Administrator",
				Nickname:  "admin",
				Role:      appModels.RoleAdmin,
				Verified:  true,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			adminID, err := userRepo.Create(ctx, admin)
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	// --- University registry --- //
	for i := range defaultProfessors {
		professor := defaultProfessors[i]
		if err := universityRepo.UpsertProfessor(ctx, &professor); err != nil {
			lgr.Error().Err(err).Str("email", professor.Email).Msg("Error seeding professor registry entry")
			finalErr = errors.Join(finalErr, err)
		}
	}
	for i := range defaultStudents {
		student := defaultStudents[i]
		if err := universityRepo.UpsertStudent(ctx, &student); err != nil {
			lgr.Error().Err(err).Str("email", student.Email).Msg("Error seeding student registry entry")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Course catalogue with main forums --- //
	for i := range defaultCourses {
		course := defaultCourses[i]
		courseID, err := courseRepo.Create(ctx, &course)
		if err != nil {
			if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("course", course.Name).Msg("Error creating course")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		if _, err := forumService.EnsureMainCourseForum(ctx, courseID); err != nil {
			lgr.Error().Err(err).Int64("courseID", courseID).Msg("Error creating main forum for course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Group subforums for every registered (course, group) pair --- //
	for _, student := range defaultStudents {
		courses, err := courseRepo.GetByYearSemester(ctx, student.Year, student.Semester)
		if err != nil {
			lgr.Error().Err(err).Str("group", student.GroupName).Msg("Error loading courses for group subforums")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for _, course := range courses {
			if _, err := forumService.EnsureGroupSubforum(ctx, course.ID, student.GroupName); err != nil {
				lgr.Error().Err(err).Int64("courseID", course.ID).Str("group", student.GroupName).
					Msg("Error creating group subforum")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// --- Professor user accounts from the registry --- //
	adminService := appServices.NewAdminService(userRepo, universityRepo, courseRepo, forumService)
	if err := adminService.SyncProfessors(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error syncing professor accounts from registry")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

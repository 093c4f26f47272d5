package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/dberrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// ICourseRepository defines the interface for course and enrollment operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByYearSemester(ctx context.Context, year, semester int) ([]*models.Course, error)
	Enroll(ctx context.Context, userID, courseID int64) error
	RemoveEnrollment(ctx context.Context, userID, courseID int64) error
	GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error)
	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "year", "semester", "description").
		Values(course.Name, course.Year, course.Semester, course.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}

	course.ID = id
	return id, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, year, semester, description, created_at
		FROM courses
		WHERE id = $1`, id).Scan(
		&course.ID, &course.Name, &course.Year, &course.Semester, &course.Description, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// GetAll retrieves all courses ordered by year, semester and name
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, year, semester, description, created_at
		FROM courses
		ORDER BY year, semester, name`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// GetByYearSemester retrieves all courses taught in a given year and semester
func (r *CourseRepository) GetByYearSemester(ctx context.Context, year, semester int) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, year, semester, description, created_at
		FROM courses
		WHERE year = $1 AND semester = $2
		ORDER BY name`, year, semester)
	if err != nil {
		logger.Error().Err(err).Int("year", year).Int("semester", semester).
			Msg("Error executing get courses by year/semester query")
		return nil, fmt.Errorf("error querying courses by year and semester: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Name, &course.Year, &course.Semester,
			&course.Description, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Enroll links a user to a course. Enrolling twice is not an error.
func (r *CourseRepository) Enroll(ctx context.Context, userID, courseID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_enrollments (user_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, course_id) DO NOTHING`, userID, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).
			Msg("Error creating course enrollment")
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// RemoveEnrollment unlinks a user from a course
func (r *CourseRepository) RemoveEnrollment(ctx context.Context, userID, courseID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM course_enrollments
		WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).
			Msg("Error removing course enrollment")
		return fmt.Errorf("error removing enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetEnrolledCourses retrieves the courses a user is enrolled in
func (r *CourseRepository) GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.year, c.semester, c.description, c.created_at
		FROM courses c
		JOIN course_enrollments ce ON ce.course_id = c.id
		WHERE ce.user_id = $1
		ORDER BY c.year, c.semester, c.name`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing enrolled courses query")
		return nil, fmt.Errorf("error querying enrolled courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// IsEnrolled checks whether a user is enrolled in a course
func (r *CourseRepository) IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_enrollments
			WHERE user_id = $1 AND course_id = $2)`, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

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
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// IUniversityRepository defines the interface for the university registry.
// The registry mirrors the institution's student and professor records and
// is the source of truth for enrollment data and account verification.
type IUniversityRepository interface {
	GetStudentByEmail(ctx context.Context, email string) (*models.UniversityStudent, error)
	GetProfessorByEmail(ctx context.Context, email string) (*models.UniversityProfessor, error)
	GetAllProfessors(ctx context.Context) ([]*models.UniversityProfessor, error)
	GetGroupNames(ctx context.Context) ([]string, error)
	UpsertStudent(ctx context.Context, student *models.UniversityStudent) error
	UpsertProfessor(ctx context.Context, professor *models.UniversityProfessor) error
}

// UniversityRepository handles university registry database operations
type UniversityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUniversityRepository creates a new UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetStudentByEmail retrieves a registry student record by email
func (r *UniversityRepository) GetStudentByEmail(ctx context.Context, email string) (*models.UniversityStudent, error) {
	student := &models.UniversityStudent{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, study_year, semester, group_name
		FROM university_students
		WHERE email = $1`, email).Scan(
		&student.ID, &student.Email, &student.Year, &student.Semester, &student.GroupName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning university student row")
		return nil, fmt.Errorf("error getting university student: %w", err)
	}
	return student, nil
}

// GetProfessorByEmail retrieves a registry professor record by email
func (r *UniversityRepository) GetProfessorByEmail(ctx context.Context, email string) (*models.UniversityProfessor, error) {
	professor := &models.UniversityProfessor{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, department
		FROM university_professors
		WHERE email = $1`, email).Scan(
		&professor.ID, &professor.Email, &professor.FirstName, &professor.LastName, &professor.Department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning university professor row")
		return nil, fmt.Errorf("error getting university professor: %w", err)
	}
	return professor, nil
}

// GetAllProfessors retrieves all registry professor records
func (r *UniversityRepository) GetAllProfessors(ctx context.Context) ([]*models.UniversityProfessor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, first_name, last_name, department
		FROM university_professors
		ORDER BY id`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all professors query")
		return nil, fmt.Errorf("error querying university professors: %w", err)
	}
	defer rows.Close()

	professors := []*models.UniversityProfessor{}
	for rows.Next() {
		professor := &models.UniversityProfessor{}
		if err := rows.Scan(&professor.ID, &professor.Email, &professor.FirstName,
			&professor.LastName, &professor.Department); err != nil {
			return nil, fmt.Errorf("error scanning university professor row: %w", err)
		}
		professors = append(professors, professor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating university professor rows: %w", err)
	}
	return professors, nil
}

// GetGroupNames retrieves the distinct study group names in the registry
func (r *UniversityRepository) GetGroupNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT group_name
		FROM university_students
		ORDER BY group_name`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing group names query")
		return nil, fmt.Errorf("error querying group names: %w", err)
	}
	defer rows.Close()

	groups := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning group name row: %w", err)
		}
		groups = append(groups, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group name rows: %w", err)
	}
	return groups, nil
}

// UpsertStudent inserts or refreshes a registry student record keyed by email
func (r *UniversityRepository) UpsertStudent(ctx context.Context, student *models.UniversityStudent) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO university_students (email, study_year, semester, group_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET study_year = EXCLUDED.study_year,
		    semester = EXCLUDED.semester,
		    group_name = EXCLUDED.group_name
		RETURNING id`,
		student.Email, student.Year, student.Semester, student.GroupName).Scan(&student.ID)
	if err != nil {
		logger.Error().Err(err).Str("email", student.Email).Msg("Error upserting university student")
		return fmt.Errorf("error upserting university student: %w", err)
	}
	return nil
}

// UpsertProfessor inserts or refreshes a registry professor record keyed by email
func (r *UniversityRepository) UpsertProfessor(ctx context.Context, professor *models.UniversityProfessor) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO university_professors (email, first_name, last_name, department)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    department = EXCLUDED.department
		RETURNING id`,
		professor.Email, professor.FirstName, professor.LastName, professor.Department).Scan(&professor.ID)
	if err != nil {
		logger.Error().Err(err).Str("email", professor.Email).Msg("Error upserting university professor")
		return fmt.Errorf("error upserting university professor: %w", err)
	}
	return nil
}

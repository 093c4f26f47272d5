package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/dberrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// IForumRepository defines the interface for forum database operations
type IForumRepository interface {
	Create(ctx context.Context, forum *models.Forum) (int64, error)
	CreateIfMissing(ctx context.Context, forum *models.Forum) (*models.Forum, error)
	GetByID(ctx context.Context, id int64) (*models.Forum, error)
	GetAll(ctx context.Context) ([]*models.Forum, error)
	GetMainCourseForum(ctx context.Context, courseID int64) (*models.Forum, error)
	GetGroupSubforum(ctx context.Context, courseID int64, groupName string) (*models.Forum, error)
	GetMainForumsForCourses(ctx context.Context, courseIDs []int64) ([]*models.Forum, error)
	GetGroupSubforumsForCourses(ctx context.Context, courseIDs []int64, groupName string) ([]*models.Forum, error)
	GetByProfessorID(ctx context.Context, professorID int64) ([]*models.Forum, error)
	GetGrantedForums(ctx context.Context, userID int64) ([]*models.Forum, error)
	GrantAccess(ctx context.Context, forumID, userID int64) error
	RevokeAccess(ctx context.Context, forumID, userID int64) error
	HasGrant(ctx context.Context, forumID, userID int64) (bool, error)
	SetProfessor(ctx context.Context, forumID int64, professorID *int64) error
}

// ForumRepository handles forum database operations
type ForumRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const forumSelect = `
	SELECT f.id, f.course_id, f.group_name, f.type, f.professor_id, f.created_at,
	       c.name, c.year, c.semester, c.description, c.created_at
	FROM forums f
	LEFT JOIN courses c ON c.id = f.course_id`

func scanForum(row pgx.Row) (*models.Forum, error) {
	forum := &models.Forum{}
	var courseName, courseDescription *string
	var courseYear, courseSemester *int
	var courseCreatedAt *time.Time

	err := row.Scan(
		&forum.ID, &forum.CourseID, &forum.GroupName, &forum.Type, &forum.ProfessorID, &forum.CreatedAt,
		&courseName, &courseYear, &courseSemester, &courseDescription, &courseCreatedAt)
	if err != nil {
		return nil, err
	}

	if forum.CourseID != nil && courseName != nil {
		forum.Course = &models.Course{
			ID:          *forum.CourseID,
			Name:        *courseName,
			Year:        *courseYear,
			Semester:    *courseSemester,
			Description: *courseDescription,
			CreatedAt:   *courseCreatedAt,
		}
	}
	return forum, nil
}

func collectForums(rows pgx.Rows) ([]*models.Forum, error) {
	forums := []*models.Forum{}
	for rows.Next() {
		forum, err := scanForum(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning forum row: %w", err)
		}
		forums = append(forums, forum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forum rows: %w", err)
	}
	return forums, nil
}

// Create inserts a new forum
func (r *ForumRepository) Create(ctx context.Context, forum *models.Forum) (int64, error) {
	sql, args, err := r.sb.Insert("forums").
		Columns("course_id", "group_name", "type", "professor_id").
		Values(forum.CourseID, forum.GroupName, forum.Type, forum.ProfessorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create forum query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create forum query")
		return 0, fmt.Errorf("error creating forum: %w", err)
	}

	forum.ID = id
	return id, nil
}

// CreateIfMissing inserts a forum unless an equivalent one already exists,
// and returns the surviving row either way. Uniqueness is enforced by
// partial indexes, so concurrent callers converge on the same forum.
func (r *ForumRepository) CreateIfMissing(ctx context.Context, forum *models.Forum) (*models.Forum, error) {
	id, err := r.Create(ctx, forum)
	if err == nil {
		return r.GetByID(ctx, id)
	}
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return nil, err
	}

	// Lost the race or the forum predates us, fetch the existing row.
	if forum.Type == models.ForumGroupSubforum && forum.CourseID != nil && forum.GroupName != nil {
		return r.GetGroupSubforum(ctx, *forum.CourseID, *forum.GroupName)
	}
	if forum.CourseID != nil {
		return r.GetMainCourseForum(ctx, *forum.CourseID)
	}
	return nil, err
}

// GetByID retrieves a forum by ID
func (r *ForumRepository) GetByID(ctx context.Context, id int64) (*models.Forum, error) {
	forum, err := scanForum(r.db.QueryRow(ctx, forumSelect+` WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumNotFound
		}
		logger.Error().Err(err).Int64("forumID", id).Msg("Error scanning forum row")
		return nil, fmt.Errorf("error getting forum by ID: %w", err)
	}
	return forum, nil
}

// GetAll retrieves all forums
func (r *ForumRepository) GetAll(ctx context.Context) ([]*models.Forum, error) {
	rows, err := r.db.Query(ctx, forumSelect+` ORDER BY f.id`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all forums query")
		return nil, fmt.Errorf("error querying forums: %w", err)
	}
	defer rows.Close()

	return collectForums(rows)
}

// GetMainCourseForum retrieves the main forum of a course
func (r *ForumRepository) GetMainCourseForum(ctx context.Context, courseID int64) (*models.Forum, error) {
	forum, err := scanForum(r.db.QueryRow(ctx, forumSelect+`
		WHERE f.course_id = $1 AND f.type = $2`, courseID, models.ForumMainCourse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error scanning main course forum row")
		return nil, fmt.Errorf("error getting main course forum: %w", err)
	}
	return forum, nil
}

// GetGroupSubforum retrieves the subforum of a course scoped to a study group
func (r *ForumRepository) GetGroupSubforum(ctx context.Context, courseID int64, groupName string) (*models.Forum, error) {
	forum, err := scanForum(r.db.QueryRow(ctx, forumSelect+`
		WHERE f.course_id = $1 AND f.group_name = $2 AND f.type = $3`,
		courseID, groupName, models.ForumGroupSubforum))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumNotFound
		}
		logger.Error().Err(err).Int64("courseID", courseID).Str("group", groupName).
			Msg("Error scanning group subforum row")
		return nil, fmt.Errorf("error getting group subforum: %w", err)
	}
	return forum, nil
}

// GetMainForumsForCourses retrieves the main forums of the given courses
func (r *ForumRepository) GetMainForumsForCourses(ctx context.Context, courseIDs []int64) ([]*models.Forum, error) {
	if len(courseIDs) == 0 {
		return []*models.Forum{}, nil
	}
	rows, err := r.db.Query(ctx, forumSelect+`
		WHERE f.course_id = ANY($1) AND f.type = $2
		ORDER BY f.id`, courseIDs, models.ForumMainCourse)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing main forums for courses query")
		return nil, fmt.Errorf("error querying main forums: %w", err)
	}
	defer rows.Close()

	return collectForums(rows)
}

// GetGroupSubforumsForCourses retrieves the group subforums of the given
// courses that match the study group.
func (r *ForumRepository) GetGroupSubforumsForCourses(ctx context.Context, courseIDs []int64, groupName string) ([]*models.Forum, error) {
	if len(courseIDs) == 0 {
		return []*models.Forum{}, nil
	}
	rows, err := r.db.Query(ctx, forumSelect+`
		WHERE f.course_id = ANY($1) AND f.group_name = $2 AND f.type = $3
		ORDER BY f.id`, courseIDs, groupName, models.ForumGroupSubforum)
	if err != nil {
		logger.Error().Err(err).Str("group", groupName).Msg("Error executing group subforums query")
		return nil, fmt.Errorf("error querying group subforums: %w", err)
	}
	defer rows.Close()

	return collectForums(rows)
}

// GetByProfessorID retrieves the forums owned by a professor
func (r *ForumRepository) GetByProfessorID(ctx context.Context, professorID int64) ([]*models.Forum, error) {
	rows, err := r.db.Query(ctx, forumSelect+`
		WHERE f.professor_id = $1
		ORDER BY f.id`, professorID)
	if err != nil {
		logger.Error().Err(err).Int64("professorID", professorID).Msg("Error executing forums by professor query")
		return nil, fmt.Errorf("error querying forums by professor: %w", err)
	}
	defer rows.Close()

	return collectForums(rows)
}

// GetGrantedForums retrieves forums the user was explicitly granted access to
func (r *ForumRepository) GetGrantedForums(ctx context.Context, userID int64) ([]*models.Forum, error) {
	rows, err := r.db.Query(ctx, forumSelect+`
		JOIN forum_allowed_users fau ON fau.forum_id = f.id
		WHERE fau.user_id = $1
		ORDER BY f.id`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing granted forums query")
		return nil, fmt.Errorf("error querying granted forums: %w", err)
	}
	defer rows.Close()

	return collectForums(rows)
}

// GrantAccess gives a user explicit access to a forum. Granting twice is
// not an error.
func (r *ForumRepository) GrantAccess(ctx context.Context, forumID, userID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO forum_allowed_users (forum_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (forum_id, user_id) DO NOTHING`, forumID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("forumID", forumID).Int64("userID", userID).
			Msg("Error granting forum access")
		return fmt.Errorf("error granting forum access: %w", err)
	}
	return nil
}

// RevokeAccess removes a user's explicit access to a forum
func (r *ForumRepository) RevokeAccess(ctx context.Context, forumID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM forum_allowed_users
		WHERE forum_id = $1 AND user_id = $2`, forumID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("forumID", forumID).Int64("userID", userID).
			Msg("Error revoking forum access")
		return fmt.Errorf("error revoking forum access: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// HasGrant checks whether a user has an explicit access grant on a forum
func (r *ForumRepository) HasGrant(ctx context.Context, forumID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM forum_allowed_users
			WHERE forum_id = $1 AND user_id = $2)`, forumID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking forum grant: %w", err)
	}
	return exists, nil
}

// SetProfessor assigns or clears the owning professor of a forum
func (r *ForumRepository) SetProfessor(ctx context.Context, forumID int64, professorID *int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE forums
		SET professor_id = $1
		WHERE id = $2`, professorID, forumID)
	if err != nil {
		logger.Error().Err(err).Int64("forumID", forumID).Msg("Error updating forum professor")
		return fmt.Errorf("error updating forum professor: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumNotFound
	}
	return nil
}

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

// ICommentRepository defines the interface for comment database operations
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	GetByPostID(ctx context.Context, postID int64) ([]*models.Comment, error)
	SetPinned(ctx context.Context, commentID int64, pinned bool) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const commentSelect = `
	SELECT cm.id, cm.post_id, cm.author_id, cm.parent_id, cm.content, cm.timestamp, cm.pinned, cm.score,
	       u.id, u.email, u.first_name, u.last_name, u.nickname, u.role
	FROM comments cm
	JOIN users u ON u.id = cm.author_id`

func scanComment(row pgx.Row) (*models.Comment, error) {
	comment := &models.Comment{}
	author := &models.User{}
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.ParentID,
		&comment.Content, &comment.Timestamp, &comment.Pinned, &comment.Score,
		&author.ID, &author.Email, &author.FirstName, &author.LastName,
		&author.Nickname, &author.Role)
	if err != nil {
		return nil, err
	}
	comment.Author = author
	return comment, nil
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("post_id", "author_id", "parent_id", "content", "pinned").
		Values(comment.PostID, comment.AuthorID, comment.ParentID, comment.Content, comment.Pinned).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.Timestamp)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error creating comment: %w", err)
	}
	return comment.ID, nil
}

// GetByID retrieves a comment with its author
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE cm.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error getting comment by ID: %w", err)
	}
	return comment, nil
}

// GetByPostID retrieves all comments of a post in insertion order. Display
// ranking happens when the tree is composed, not here.
func (r *CommentRepository) GetByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx, commentSelect+`
		WHERE cm.post_id = $1
		ORDER BY cm.id`, postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing comments by post query")
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// SetPinned updates a comment's pinned flag
func (r *CommentRepository) SetPinned(ctx context.Context, commentID int64, pinned bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE comments
		SET pinned = $1
		WHERE id = $2`, pinned, commentID)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", commentID).Msg("Error updating comment pinned flag")
		return fmt.Errorf("error updating comment pinned flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// Delete removes a comment by ID
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing delete comment query")
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

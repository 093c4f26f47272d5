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

// IPostRepository defines the interface for post database operations
type IPostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetByForumID(ctx context.Context, forumID int64) ([]*models.Post, error)
	SetPinned(ctx context.Context, postID int64, pinned bool) error
	Delete(ctx context.Context, id int64) error
}

// PostRepository handles post database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const postSelect = `
	SELECT p.id, p.forum_id, p.author_id, p.title, p.content, p.timestamp, p.pinned, p.score,
	       u.id, u.email, u.first_name, u.last_name, u.nickname, u.role
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func scanPost(row pgx.Row) (*models.Post, error) {
	post := &models.Post{}
	author := &models.User{}
	err := row.Scan(
		&post.ID, &post.ForumID, &post.AuthorID, &post.Title, &post.Content,
		&post.Timestamp, &post.Pinned, &post.Score,
		&author.ID, &author.Email, &author.FirstName, &author.LastName,
		&author.Nickname, &author.Role)
	if err != nil {
		return nil, err
	}
	post.Author = author
	return post, nil
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("forum_id", "author_id", "title", "content", "pinned").
		Values(post.ForumID, post.AuthorID, post.Title, post.Content, post.Pinned).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.Timestamp)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}
	return post.ID, nil
}

// GetByID retrieves a post with its author
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", id).Msg("Error scanning post row")
		return nil, fmt.Errorf("error getting post by ID: %w", err)
	}
	return post, nil
}

// GetByForumID retrieves the posts of a forum ranked for display: pinned
// posts first, then by score, newest first among ties.
func (r *PostRepository) GetByForumID(ctx context.Context, forumID int64) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, postSelect+`
		WHERE p.forum_id = $1
		ORDER BY p.pinned DESC, p.score DESC, p.timestamp DESC`, forumID)
	if err != nil {
		logger.Error().Err(err).Int64("forumID", forumID).Msg("Error executing posts by forum query")
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// SetPinned updates a post's pinned flag
func (r *PostRepository) SetPinned(ctx context.Context, postID int64, pinned bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE posts
		SET pinned = $1
		WHERE id = $2`, pinned, postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error updating post pinned flag")
		return fmt.Errorf("error updating post pinned flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// Delete removes a post by ID
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("postID", id).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

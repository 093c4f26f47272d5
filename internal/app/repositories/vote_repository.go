package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
	"github.com/uniforum/uniforum/internal/pkg/logger"
)

// IVoteRepository defines the interface for the vote ledger
type IVoteRepository interface {
	Apply(ctx context.Context, userID int64, target models.VoteTarget, targetID int64, value int) (*models.VoteResult, error)
	GetUserVote(ctx context.Context, userID int64, target models.VoteTarget, targetID int64) (*models.Vote, error)
}

// VoteRepository handles the vote ledger and score bookkeeping. Every
// mutation runs in a transaction that locks the target row, so concurrent
// votes on the same post or comment serialize and the score never drifts
// from the ledger.
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{db: db}
}

func targetTable(target models.VoteTarget) (string, error) {
	switch target {
	case models.VoteTargetPost:
		return "posts", nil
	case models.VoteTargetComment:
		return "comments", nil
	default:
		return "", fmt.Errorf("unknown vote target %q", target)
	}
}

func notFoundErr(target models.VoteTarget) error {
	if target == models.VoteTargetPost {
		return apperrors.ErrPostNotFound
	}
	return apperrors.ErrCommentNotFound
}

// Apply records a vote against a post or comment and adjusts the target's
// score. The outcome follows the toggle rules: a first vote creates the
// ledger entry, repeating the same vote removes it, and voting the other
// way flips it with a two point swing.
func (r *VoteRepository) Apply(ctx context.Context, userID int64, target models.VoteTarget, targetID int64, value int) (*models.VoteResult, error) {
	table, err := targetTable(target)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the target row so concurrent votes serialize on it.
	var score int
	err = tx.QueryRow(ctx, `SELECT score FROM `+table+` WHERE id = $1 FOR UPDATE`, targetID).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFoundErr(target)
		}
		logger.Error().Err(err).Str("target", string(target)).Int64("targetID", targetID).
			Msg("Error locking vote target row")
		return nil, fmt.Errorf("error locking vote target: %w", err)
	}

	existing, err := getVoteTx(ctx, tx, userID, target, targetID)
	if err != nil {
		return nil, err
	}

	outcome, err := models.ResolveVote(existing, value)
	if err != nil {
		return nil, err
	}

	switch outcome.Op {
	case models.VoteCreate:
		_, err = tx.Exec(ctx, `
			INSERT INTO votes (user_id, `+targetColumn(target)+`, value)
			VALUES ($1, $2, $3)`, userID, targetID, value)
	case models.VoteDelete:
		_, err = tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, existing.ID)
	case models.VoteUpdate:
		_, err = tx.Exec(ctx, `UPDATE votes SET value = $1 WHERE id = $2`, value, existing.ID)
	}
	if err != nil {
		logger.Error().Err(err).Str("target", string(target)).Int64("targetID", targetID).
			Msg("Error writing vote ledger entry")
		return nil, fmt.Errorf("error writing vote: %w", err)
	}

	var newScore int
	err = tx.QueryRow(ctx, `
		UPDATE `+table+`
		SET score = score + $1
		WHERE id = $2
		RETURNING score`, outcome.ScoreDelta, targetID).Scan(&newScore)
	if err != nil {
		logger.Error().Err(err).Str("target", string(target)).Int64("targetID", targetID).
			Msg("Error adjusting target score")
		return nil, fmt.Errorf("error adjusting score: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing vote transaction: %w", err)
	}

	return &models.VoteResult{Outcome: outcome, Score: newScore}, nil
}

// GetUserVote retrieves a user's current vote on a target, or nil when the
// user has no standing vote.
func (r *VoteRepository) GetUserVote(ctx context.Context, userID int64, target models.VoteTarget, targetID int64) (*models.Vote, error) {
	if _, err := targetTable(target); err != nil {
		return nil, err
	}
	return getVote(ctx, r.db, userID, target, targetID)
}

func targetColumn(target models.VoteTarget) string {
	if target == models.VoteTargetPost {
		return "post_id"
	}
	return "comment_id"
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getVote(ctx context.Context, q queryRower, userID int64, target models.VoteTarget, targetID int64) (*models.Vote, error) {
	vote := &models.Vote{}
	err := q.QueryRow(ctx, `
		SELECT id, user_id, post_id, comment_id, value
		FROM votes
		WHERE user_id = $1 AND `+targetColumn(target)+` = $2`, userID, targetID).Scan(
		&vote.ID, &vote.UserID, &vote.PostID, &vote.CommentID, &vote.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting vote: %w", err)
	}
	return vote, nil
}

func getVoteTx(ctx context.Context, tx pgx.Tx, userID int64, target models.VoteTarget, targetID int64) (*models.Vote, error) {
	return getVote(ctx, tx, userID, target, targetID)
}

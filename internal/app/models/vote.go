package models

import (
	"github.com/uniforum/uniforum/internal/pkg/apperrors"
)

// Vote links one user to exactly one post or comment with a value of +1 or -1.
// At most one row exists per (user, target) pair.
type Vote struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	PostID    *int64 `json:"postId,omitempty" db:"post_id"`
	CommentID *int64 `json:"commentId,omitempty" db:"comment_id"`
	Value     int    `json:"value" db:"value"`
}

// VoteOp is the ledger mutation a vote request resolves to.
type VoteOp int

const (
	// VoteCreate inserts a new vote row.
	VoteCreate VoteOp = iota
	// VoteDelete removes the existing row (toggle-off).
	VoteDelete
	// VoteUpdate flips the existing row to the opposite value.
	VoteUpdate
)

// VoteOutcome describes how the ledger and the target's cached score must
// change for a vote request. ScoreDelta is applied to the target's score in
// the same transaction as the ledger mutation so the score never drifts from
// the signed sum of active votes.
type VoteOutcome struct {
	Op         VoteOp
	Value      int
	ScoreDelta int
}

// VoteResult is the committed effect of a vote request: the resolved
// outcome plus the target's score after the transaction.
type VoteResult struct {
	Outcome VoteOutcome
	Score   int
}

// ResolveVote computes the ledger transition for a vote request given the
// voter's existing vote on the target, if any.
//
// No existing vote: create with the requested value. Same value again:
// toggle the vote off. Opposite value: flip it, swinging the score by 2.
func ResolveVote(existing *Vote, value int) (VoteOutcome, error) {
	if value != 1 && value != -1 {
		return VoteOutcome{}, apperrors.ErrInvalidVoteValue
	}

	if existing == nil {
		return VoteOutcome{Op: VoteCreate, Value: value, ScoreDelta: value}, nil
	}

	if existing.Value == value {
		return VoteOutcome{Op: VoteDelete, Value: 0, ScoreDelta: -value}, nil
	}

	return VoteOutcome{Op: VoteUpdate, Value: value, ScoreDelta: value - existing.Value}, nil
}

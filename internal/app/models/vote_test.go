package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/pkg/apperrors"
)

func TestResolveVote_NewVote(t *testing.T) {
	outcome, err := ResolveVote(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, VoteCreate, outcome.Op)
	assert.Equal(t, 1, outcome.Value)
	assert.Equal(t, 1, outcome.ScoreDelta)

	outcome, err = ResolveVote(nil, -1)
	require.NoError(t, err)
	assert.Equal(t, VoteCreate, outcome.Op)
	assert.Equal(t, -1, outcome.ScoreDelta)
}

func TestResolveVote_ToggleOff(t *testing.T) {
	existing := &Vote{UserID: 1, Value: 1}

	outcome, err := ResolveVote(existing, 1)
	require.NoError(t, err)
	assert.Equal(t, VoteDelete, outcome.Op)
	assert.Equal(t, -1, outcome.ScoreDelta)

	existing.Value = -1
	outcome, err = ResolveVote(existing, -1)
	require.NoError(t, err)
	assert.Equal(t, VoteDelete, outcome.Op)
	assert.Equal(t, 1, outcome.ScoreDelta)
}

func TestResolveVote_FlipSwingsByTwo(t *testing.T) {
	existing := &Vote{UserID: 1, Value: 1}

	outcome, err := ResolveVote(existing, -1)
	require.NoError(t, err)
	assert.Equal(t, VoteUpdate, outcome.Op)
	assert.Equal(t, -1, outcome.Value)
	assert.Equal(t, -2, outcome.ScoreDelta)

	existing.Value = -1
	outcome, err = ResolveVote(existing, 1)
	require.NoError(t, err)
	assert.Equal(t, VoteUpdate, outcome.Op)
	assert.Equal(t, 2, outcome.ScoreDelta)
}

func TestResolveVote_RepeatedRequestsToggle(t *testing.T) {
	// Simulate four identical clicks: apply, toggle off, re-apply, toggle off.
	score := 0
	var existing *Vote

	for i, wantScore := range []int{1, 0, 1, 0} {
		outcome, err := ResolveVote(existing, 1)
		require.NoError(t, err)
		score += outcome.ScoreDelta
		assert.Equal(t, wantScore, score, "click %d", i+1)

		switch outcome.Op {
		case VoteCreate, VoteUpdate:
			existing = &Vote{UserID: 1, Value: outcome.Value}
		case VoteDelete:
			existing = nil
		}
	}
}

func TestResolveVote_InvalidValue(t *testing.T) {
	for _, v := range []int{0, 2, -2, 100} {
		_, err := ResolveVote(nil, v)
		assert.ErrorIs(t, err, apperrors.ErrInvalidVoteValue, "value %d", v)
	}
}

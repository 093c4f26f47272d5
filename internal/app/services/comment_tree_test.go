package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniforum/uniforum/internal/app/models"
)

var treeAuthor = &models.User{ID: 7, Nickname: "al1ce", Role: models.RoleStudent}

func comment(id int64, parentID *int64, pinned bool, score int, ts time.Time) *models.Comment {
	return &models.Comment{
		ID:        id,
		PostID:    1,
		AuthorID:  treeAuthor.ID,
		ParentID:  parentID,
		Content:   "c",
		Timestamp: ts,
		Pinned:    pinned,
		Score:     score,
		Author:    treeAuthor,
	}
}

func ptr(v int64) *int64 { return &v }

func TestComposeCommentTree_TopLevelOrdering(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Pinned wins over score, score wins over recency.
	comments := []*models.Comment{
		comment(1, nil, false, 1, base.Add(1*time.Minute)),
		comment(2, nil, true, 0, base.Add(2*time.Minute)),
		comment(3, nil, false, 5, base.Add(3*time.Minute)),
	}

	tree := ComposeCommentTree(comments)
	require.Len(t, tree, 3)
	assert.Equal(t, int64(2), tree[0].ID)
	assert.Equal(t, int64(3), tree[1].ID)
	assert.Equal(t, int64(1), tree[2].ID)
}

func TestComposeCommentTree_EqualScoreNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	comments := []*models.Comment{
		comment(1, nil, false, 2, base.Add(1*time.Minute)),
		comment(2, nil, false, 2, base.Add(5*time.Minute)),
	}

	tree := ComposeCommentTree(comments)
	require.Len(t, tree, 2)
	assert.Equal(t, int64(2), tree[0].ID)
	assert.Equal(t, int64(1), tree[1].ID)
}

func TestComposeCommentTree_RepliesChronological(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Replies arrive out of order and carry scores and pins that must not
	// affect their placement.
	comments := []*models.Comment{
		comment(1, nil, false, 0, base),
		comment(4, ptr(1), true, 9, base.Add(3*time.Minute)),
		comment(2, ptr(1), false, 0, base.Add(1*time.Minute)),
		comment(3, ptr(1), false, 4, base.Add(2*time.Minute)),
	}

	tree := ComposeCommentTree(comments)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 3)
	assert.Equal(t, int64(2), tree[0].Replies[0].ID)
	assert.Equal(t, int64(3), tree[0].Replies[1].ID)
	assert.Equal(t, int64(4), tree[0].Replies[2].ID)
}

func TestComposeCommentTree_NestedReplies(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	comments := []*models.Comment{
		comment(1, nil, false, 0, base),
		comment(2, ptr(1), false, 0, base.Add(1*time.Minute)),
		comment(3, ptr(2), false, 0, base.Add(2*time.Minute)),
	}

	tree := ComposeCommentTree(comments)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, int64(3), tree[0].Replies[0].Replies[0].ID)
}

func TestComposeCommentTree_EmptyAndLeafReplies(t *testing.T) {
	assert.Empty(t, ComposeCommentTree(nil))

	tree := ComposeCommentTree([]*models.Comment{
		comment(1, nil, false, 0, time.Now()),
	})
	require.Len(t, tree, 1)
	// Leaves serialize as an empty array, not null.
	assert.NotNil(t, tree[0].Replies)
	assert.Empty(t, tree[0].Replies)
}

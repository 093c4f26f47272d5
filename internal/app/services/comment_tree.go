package services

import (
	"sort"

	"github.com/uniforum/uniforum/internal/app/models"
	"github.com/uniforum/uniforum/internal/app/models/dto"
)

// ComposeCommentTree turns the flat comment list of a post into the
// display-ready forest. Top-level comments rank pinned first, then by
// score, newest first among ties. Replies ignore score and pinning
// entirely and read in chronological order at every depth.
func ComposeCommentTree(comments []*models.Comment) []dto.CommentResponse {
	children := make(map[int64][]*models.Comment)
	roots := []*models.Comment{}

	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		a, b := roots[i], roots[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Timestamp.After(b.Timestamp)
	})

	tree := make([]dto.CommentResponse, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, composeComment(root, children))
	}
	return tree
}

func composeComment(comment *models.Comment, children map[int64][]*models.Comment) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    ProjectAuthor(comment.Author),
		PostID:    comment.PostID,
		Timestamp: comment.Timestamp,
		Pinned:    comment.Pinned,
		Score:     comment.Score,
		ParentID:  comment.ParentID,
		Replies:   []dto.CommentResponse{},
	}

	replies := children[comment.ID]
	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].Timestamp.Before(replies[j].Timestamp)
	})

	for _, reply := range replies {
		resp.Replies = append(resp.Replies, composeComment(reply, children))
	}
	return resp
}

package models

import "time"

// Comment defines the comment model based on the 'comments' table.
// ParentID links replies into a tree restricted to a single post.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	Content   string    `json:"content" db:"content"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Pinned    bool      `json:"pinned" db:"pinned"`
	Score     int       `json:"score" db:"score"`

	Author *User `json:"author,omitempty"` // Relation, no db tag
}

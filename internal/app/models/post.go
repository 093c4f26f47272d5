package models

import "time"

// Post defines the post model based on the 'posts' table
type Post struct {
	ID        int64     `json:"id" db:"id"`
	ForumID   int64     `json:"forumId" db:"forum_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Pinned    bool      `json:"pinned" db:"pinned"`
	Score     int       `json:"score" db:"score"`

	Author *User `json:"author,omitempty"` // Relation, no db tag
}

package dto

import "time"

// AuthorResponse is the privacy-shaped projection of a post or comment
// author. What it exposes depends on the author's role: students show only
// their nickname, admins show their full name, professors show full name
// and email.
type AuthorResponse struct {
	ID          int64   `json:"id"`
	DisplayName string  `json:"displayName"`
	Role        string  `json:"role"`
	Email       *string `json:"email,omitempty"`
}

// ForumResponse describes a forum visible to the requesting user
type ForumResponse struct {
	ID          int64     `json:"id"`
	CourseID    *int64    `json:"courseId,omitempty"`
	CourseName  string    `json:"courseName,omitempty"`
	GroupName   *string   `json:"groupName,omitempty"`
	Type        string    `json:"type"`
	ProfessorID *int64    `json:"professorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PostRequest is the payload for creating a post
type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// PostResponse is a display-ready post with its composed comment forest
type PostResponse struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Author    AuthorResponse    `json:"author"`
	ForumID   int64             `json:"forumId"`
	Timestamp time.Time         `json:"timestamp"`
	Pinned    bool              `json:"pinned"`
	Score     int               `json:"score"`
	Comments  []CommentResponse `json:"comments"`
}

// CommentRequest is the payload for creating a comment; ParentID is set
// when replying to another comment.
type CommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parentId,omitempty"`
}

// CommentResponse is a display-ready comment with its replies composed in
// chronological order.
type CommentResponse struct {
	ID        int64             `json:"id"`
	Content   string            `json:"content"`
	Author    AuthorResponse    `json:"author"`
	PostID    int64             `json:"postId"`
	Timestamp time.Time         `json:"timestamp"`
	Pinned    bool              `json:"pinned"`
	Score     int               `json:"score"`
	ParentID  *int64            `json:"parentId,omitempty"`
	Replies   []CommentResponse `json:"replies"`
}

// VoteRequest is the payload for voting on a post or comment
type VoteRequest struct {
	Value int `json:"value" binding:"required" example:"1"`
}

// VoteResponse reports the standing vote and the target's score after a
// vote was applied. Value is 0 when the vote was toggled off.
type VoteResponse struct {
	TargetID int64 `json:"targetId"`
	Value    int   `json:"value"`
	Score    int   `json:"score"`
}

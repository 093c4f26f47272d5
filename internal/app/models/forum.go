package models

import "time"

// Forum defines the forum model based on the 'forums' table.
// A MAIN_COURSE forum belongs to a course; a GROUP_SUBFORUM additionally
// carries the group name it is scoped to. The professor field is the
// assigned owner, and explicit access grants live in 'forum_allowed_users'.
type Forum struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    *int64    `json:"courseId,omitempty" db:"course_id"`
	GroupName   *string   `json:"groupName,omitempty" db:"group_name"`
	Type        ForumType `json:"type" db:"type" example:"MAIN_COURSE"`
	ProfessorID *int64    `json:"professorId,omitempty" db:"professor_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	Course *Course `json:"course,omitempty"` // Relation, no db tag
}

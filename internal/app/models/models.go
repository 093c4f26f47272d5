package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent   RoleType = "STUDENT"
	RoleProfessor RoleType = "PROFESSOR"
	RoleAdmin     RoleType = "ADMIN"
)

// ForumType defines the forum scoping type
type ForumType string

const (
	// ForumMainCourse is the single top-level board for a course.
	ForumMainCourse ForumType = "MAIN_COURSE"
	// ForumGroupSubforum is a board scoped to one study group within one course.
	ForumGroupSubforum ForumType = "GROUP_SUBFORUM"
)

// VoteTarget defines what kind of entity a vote points at
type VoteTarget string

const (
	VoteTargetPost    VoteTarget = "POST"
	VoteTargetComment VoteTarget = "COMMENT"
)

// Notification type tags
const (
	NotificationOfficialPostComment  = "OFFICIAL_POST_COMMENT"
	NotificationOfficialCommentReply = "OFFICIAL_COMMENT_REPLY"
)

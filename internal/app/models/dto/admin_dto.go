package dto

// MoveStudentRequest moves a student to a different study group
type MoveStudentRequest struct {
	GroupName string `json:"groupName" binding:"required" example:"Group B"`
}

// AssignProfessorRequest assigns a professor as owner of a forum
type AssignProfessorRequest struct {
	ProfessorID int64 `json:"professorId" binding:"required" example:"2"`
}

// CreateCourseRequest creates a new university course
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required" example:"CS 101"`
	Year        int    `json:"year" binding:"required" example:"1"`
	Semester    int    `json:"semester" binding:"required" example:"1"`
	Description string `json:"description" example:"Introduction to Computer Science"`
}

// UpdateUserRequest updates a user's profile and university association
type UpdateUserRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Nickname  string  `json:"nickname" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	GroupName *string `json:"groupName,omitempty"`
	StudyYear *int    `json:"studyYear,omitempty"`
	Semester  *int    `json:"semester,omitempty"`
	Verified  bool    `json:"verified"`
}

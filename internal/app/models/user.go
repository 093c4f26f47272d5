package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"alice@uni.edu"`
	Password  string    `json:"-" db:"password"`
	FirstName string    `json:"firstName" db:"first_name" example:"Alice"`
	LastName  string    `json:"lastName" db:"last_name" example:"Smith"`
	Nickname  string    `json:"nickname" db:"nickname" example:"al1ce"`
	Role      RoleType  `json:"role" db:"role" example:"STUDENT"`
	Verified  bool      `json:"verified" db:"verified" example:"true"`
	GroupName *string   `json:"groupName,omitempty" db:"group_name" example:"Group A"`
	StudyYear *int      `json:"studyYear,omitempty" db:"study_year" example:"1"`
	Semester  *int      `json:"semester,omitempty" db:"semester" example:"1"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOfficial reports whether the user counts as an official, i.e. a
// professor or admin whose comments can trigger notifications. Pinning is
// narrower and applies to professors only.
func (u *User) IsOfficial() bool {
	return u.Role == RoleProfessor || u.Role == RoleAdmin
}

// FullName returns "first last" for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UniversityStudent defines a record from the university's registry,
// used to verify and enrich student accounts at registration.
type UniversityStudent struct {
	ID        int64  `json:"id" db:"id"`
	Email     string `json:"email" db:"email"`
	Year      int    `json:"year" db:"year"`
	Semester  int    `json:"semester" db:"semester"`
	GroupName string `json:"groupName" db:"group_name"`
}

// UniversityProfessor defines a professor record from the university's registry.
type UniversityProfessor struct {
	ID         int64  `json:"id" db:"id"`
	Email      string `json:"email" db:"email"`
	FirstName  string `json:"firstName" db:"first_name"`
	LastName   string `json:"lastName" db:"last_name"`
	Department string `json:"department" db:"department"`
}

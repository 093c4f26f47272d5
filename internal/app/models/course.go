package models

import "time"

// Course defines a university course based on the 'courses' table.
// Enrollment is a many-to-many relation stored in 'course_enrollments'.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Year        int       `json:"year" db:"year"`
	Semester    int       `json:"semester" db:"semester"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

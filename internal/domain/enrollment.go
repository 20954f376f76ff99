package domain

import "time"

// Enrollment links a student to a course. The (StudentID, CourseID) pair is unique.
type Enrollment struct {
	ID        string
	StudentID string
	CourseID  string
	CreatedAt time.Time
}

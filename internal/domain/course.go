package domain

import "time"

// Course is owned by the company that created it.
type Course struct {
	ID          string
	Name        string
	Description string
	VideoLink   string
	CompanyID   string
	CreatedAt   time.Time
}

// CourseListing is a course joined with its owner's display name.
type CourseListing struct {
	Course
	CompanyName string
}

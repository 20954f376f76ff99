package domain

import "time"

// Student is an account that enrolls in courses.
type Student struct {
	ID           string
	Name         string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

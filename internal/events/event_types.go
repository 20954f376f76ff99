package events

import (
	"time"

	"github.com/spec-kit/enrollment-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventCourseCreated     EventType = "course_created"
	EventCourseDeleted     EventType = "course_deleted"
	EventStudentEnrolled   EventType = "student_enrolled"
)

// Actor identifies the account that caused an event.
type Actor struct {
	Role domain.Role `json:"role"`
	ID   string      `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CoursePayload payload for course_created and course_deleted.
type CoursePayload struct {
	CourseID  string `json:"course_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

// StudentEnrolledPayload payload.
type StudentEnrolledPayload struct {
	EnrollmentID string `json:"enrollment_id"`
	CourseID     string `json:"course_id"`
}

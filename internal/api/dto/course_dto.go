package dto

import (
	"time"

	"github.com/spec-kit/enrollment-service/internal/domain"
)

// CreateCourseRequest payload for POST /courses.
type CreateCourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoLink   string `json:"video_link"`
}

// EnrollRequest payload for POST /enrollments.
type EnrollRequest struct {
	CourseID string `json:"course_id"`
}

// CourseResponse is a course as exposed over HTTP.
type CourseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoLink   string    `json:"video_link"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EnrollmentResponse confirms a new enrollment.
type EnrollmentResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CourseID  string    `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCourseResponse(c *domain.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		VideoLink:   c.VideoLink,
		CompanyID:   c.CompanyID,
		CreatedAt:   c.CreatedAt,
	}
}

func NewCourseList(courses []domain.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseResponse(&courses[i]))
	}
	return out
}

func NewListingList(listings []domain.CourseListing) []CourseResponse {
	out := make([]CourseResponse, 0, len(listings))
	for i := range listings {
		resp := NewCourseResponse(&listings[i].Course)
		resp.CompanyName = listings[i].CompanyName
		out = append(out, resp)
	}
	return out
}

func NewEnrollmentResponse(e *domain.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:        e.ID,
		StudentID: e.StudentID,
		CourseID:  e.CourseID,
		CreatedAt: e.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/spec-kit/enrollment-service/internal/domain"
)

// StudentRegisterRequest payload for new students.
type StudentRegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// CompanyRegisterRequest payload for new companies.
type CompanyRegisterRequest struct {
	CNPJ     string `json:"cnpj"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// StudentResponse is the public view of a student. The password digest never leaves the service.
type StudentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyResponse is the public view of a company.
type CompanyResponse struct {
	ID        string    `json:"id"`
	CNPJ      string    `json:"cnpj"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func NewStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Username:  s.Username,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}

func NewStudentList(students []domain.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, NewStudentResponse(&students[i]))
	}
	return out
}

func NewCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		CNPJ:      c.CNPJ,
		Username:  c.Username,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

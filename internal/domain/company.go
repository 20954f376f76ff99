package domain

import "time"

// Company is an account that publishes courses. CNPJ is the national tax id,
// stored as its 14 digits.
type Company struct {
	ID           string
	CNPJ         string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

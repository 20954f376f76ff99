package domain

// Role scopes what a token may authorize.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleCompany
}

package models

type Role string

const RoleAdmin Role = "admin"

// CallerIdentity is the authenticated caller as supplied by the identity collaborator.
type CallerIdentity struct {
	ID    string
	Role  Role
	Name  string
	Email string
}

func (c CallerIdentity) IsAdmin() bool {
	return c.Role == RoleAdmin
}

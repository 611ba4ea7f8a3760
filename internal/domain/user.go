package domain

// User is an account of a tenant: either its first, auto-approved account or
// a subordinate officer.
type User struct {
	ID           string
	Email        string
	FirstName    *string
	LastName     *string
	PasswordHash string
	TenantID     string
	Approved     bool
}

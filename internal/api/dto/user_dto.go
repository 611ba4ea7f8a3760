package dto

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// SignUpRequest payload for POST /auth/sign_up.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId"`
}

// SignInRequest payload for POST /auth/sign_in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse carries the issued token and the signed-in account.
type SignInResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// CreateOfficerRequest payload for POST /officers.
type CreateOfficerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Approved  *bool   `json:"approved"`
}

// UpdateOfficerRequest payload for PUT /officers/:id. Omitted fields are kept.
type UpdateOfficerRequest struct {
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Approved  *bool   `json:"approved"`
}

// UserResponse is the public view of an account; the password hash never leaves the service.
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	TenantID  string  `json:"tenantId"`
	Approved  bool    `json:"approved"`
}

// NewUserResponse maps a domain account.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		TenantID:  u.TenantID,
		Approved:  u.Approved,
	}
}

// NewUserResponses maps a slice of accounts.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

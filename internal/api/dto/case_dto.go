package dto

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// CreateCaseRequest payload for POST /cases.
type CreateCaseRequest struct {
	LicenseNumber string  `json:"licenseNumber"`
	OwnerFullName string  `json:"ownerFullName"`
	Type          string  `json:"type"`
	Officer       *string `json:"officer"`
	Color         *string `json:"color"`
	Date          *string `json:"date"`
	Description   *string `json:"description"`
}

// PublicReportRequest payload for POST /public/report. The tenant is self-asserted.
type PublicReportRequest struct {
	TenantID      string  `json:"tenantId"`
	LicenseNumber string  `json:"licenseNumber"`
	OwnerFullName string  `json:"ownerFullName"`
	Type          string  `json:"type"`
	Color         *string `json:"color"`
	Date          *string `json:"date"`
	Description   *string `json:"description"`
}

// UpdateCaseRequest payload for PUT /cases/:id. Omitted fields are kept,
// empty strings clear optional fields.
type UpdateCaseRequest struct {
	Status        *string `json:"status"`
	LicenseNumber *string `json:"licenseNumber"`
	OwnerFullName *string `json:"ownerFullName"`
	Type          *string `json:"type"`
	Officer       *string `json:"officer"`
	Color         *string `json:"color"`
	Date          *string `json:"date"`
	Description   *string `json:"description"`
	Resolution    *string `json:"resolution"`
}

// CaseResponse is the wire form of a case.
type CaseResponse struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	LicenseNumber string     `json:"licenseNumber"`
	OwnerFullName string     `json:"ownerFullName"`
	Type          string     `json:"type"`
	TenantID      string     `json:"tenantId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
	Color         *string    `json:"color"`
	Date          *time.Time `json:"date"`
	Officer       *string    `json:"officer"`
	Description   *string    `json:"description"`
	Resolution    *string    `json:"resolution"`
}

func NewCaseResponse(c *domain.Case) CaseResponse {
	return CaseResponse{
		ID:            c.ID,
		Status:        string(c.Status),
		LicenseNumber: c.LicenseNumber,
		OwnerFullName: c.OwnerFullName,
		Type:          string(c.Type),
		TenantID:      c.TenantID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		Color:         c.Color,
		Date:          c.Date,
		Officer:       c.OfficerID,
		Description:   c.Description,
		Resolution:    c.Resolution,
	}
}

func NewCaseResponses(cases []domain.Case) []CaseResponse {
	out := make([]CaseResponse, 0, len(cases))
	for i := range cases {
		out = append(out, NewCaseResponse(&cases[i]))
	}
	return out
}

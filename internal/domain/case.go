package domain

import "time"

// CaseStatus enumerates lifecycle states for cases.
type CaseStatus string

const (
	CaseStatusNew        CaseStatus = "new"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusDone       CaseStatus = "done"
)

// CaseType classifies the violated license.
type CaseType string

const (
	CaseTypeSport   CaseType = "sport"
	CaseTypeGeneral CaseType = "general"
)

// Case is a license-violation record owned by a tenant.
type Case struct {
	ID            string
	Status        CaseStatus
	LicenseNumber string
	OwnerFullName string
	Type          CaseType
	TenantID      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	Color         *string
	Date          *time.Time
	OfficerID     *string
	Description   *string
	Resolution    *string
}

package events

import (
	"time"

	"github.com/spec-kit/case-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated       EventType = "case_created"
	EventCaseReported      EventType = "case_reported"
	EventCaseStatusChanged EventType = "case_status_changed"
	EventCaseAssigned      EventType = "case_assigned"
	EventOfficerApproved   EventType = "officer_approved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TenantID  string      `json:"tenant_id"`
	SubjectID string      `json:"subject_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload for created and reported cases.
type CaseCreatedPayload struct {
	LicenseNumber string          `json:"license_number"`
	Type          domain.CaseType `json:"type"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	OldStatus domain.CaseStatus `json:"old_status"`
	NewStatus domain.CaseStatus `json:"new_status"`
}

// CaseAssignedPayload payload.
type CaseAssignedPayload struct {
	OfficerID *string `json:"officer_id,omitempty"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/repository"
	"github.com/spec-kit/case-service/internal/validation"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// CaseService owns the case lifecycle. Every operation is scoped to the
// caller's tenant, except public reports which name their tenant.
type CaseService struct {
	cases     repository.CaseRepository
	users     repository.UserRepository
	validator *validation.Validator
	events    publisher
	now       func() time.Time
}

// CaseDependencies bundles collaborators for the case service.
type CaseDependencies struct {
	CaseRepo   repository.CaseRepository
	UserRepo   repository.UserRepository
	Validator  *validation.Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// CaseInput describes case creation payload.
type CaseInput struct {
	LicenseNumber string
	OwnerFullName string
	Type          string
	Officer       *string
	Color         *string
	Date          *string
	Description   *string
}

// CasePatch lists case fields to change. Nil fields keep their stored value;
// an empty string clears an optional field.
type CasePatch struct {
	Status        *string
	LicenseNumber *string
	OwnerFullName *string
	Type          *string
	Officer       *string
	Color         *string
	Date          *string
	Description   *string
	Resolution    *string
}

// CaseListFilter narrows ListCases.
type CaseListFilter struct {
	Status    *string
	OfficerID *string
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	v := deps.Validator
	if v == nil {
		v = validation.New()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &CaseService{
		cases:     deps.CaseRepo,
		users:     deps.UserRepo,
		validator: v,
		events:    publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
		now:       clock,
	}
}

func (in CaseInput) fields() validation.Fields {
	fields := validation.Fields{
		"licenseNumber": in.LicenseNumber,
		"ownerFullName": in.OwnerFullName,
		"type":          in.Type,
	}
	fields.Set("date", in.Date)
	return fields
}

// CreateCase records a new case under the caller's tenant.
func (s *CaseService) CreateCase(ctx context.Context, caller *domain.User, input CaseInput) (*domain.Case, error) {
	if err := checkFields(s.validator, input.fields(), validation.CaseCreateRules); err != nil {
		return nil, err
	}

	c, err := s.newCase(input, caller.TenantID)
	if err != nil {
		return nil, err
	}
	if input.Officer != nil {
		if c.OfficerID, err = s.resolveOfficer(ctx, caller.TenantID, *input.Officer); err != nil {
			return nil, err
		}
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventCaseCreated,
		TenantID:  c.TenantID,
		SubjectID: c.ID,
		ActorID:   &caller.ID,
		Payload:   events.CaseCreatedPayload{LicenseNumber: c.LicenseNumber, Type: c.Type},
	})
	return c, nil
}

// ReportCase records a case submitted without authentication. The tenant is
// taken from the submission as is and no officer can be assigned.
func (s *CaseService) ReportCase(ctx context.Context, tenantID string, input CaseInput) (*domain.Case, error) {
	fields := input.fields()
	fields["tenantId"] = tenantID
	if err := checkFields(s.validator, fields, validation.PublicReportRules); err != nil {
		return nil, err
	}

	c, err := s.newCase(input, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventCaseReported,
		TenantID:  c.TenantID,
		SubjectID: c.ID,
		Payload:   events.CaseCreatedPayload{LicenseNumber: c.LicenseNumber, Type: c.Type},
	})
	return c, nil
}

func (s *CaseService) newCase(input CaseInput, tenantID string) (*domain.Case, error) {
	date, err := parseOptionalDate(input.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Case{
		Status:        domain.CaseStatusNew,
		LicenseNumber: input.LicenseNumber,
		OwnerFullName: input.OwnerFullName,
		Type:          domain.CaseType(input.Type),
		TenantID:      tenantID,
		CreatedAt:     s.now().UTC(),
		Color:         nonEmpty(input.Color),
		Date:          date,
		Description:   nonEmpty(input.Description),
	}, nil
}

// UpdateCase merges patch into a case of the caller's tenant.
func (s *CaseService) UpdateCase(ctx context.Context, caller *domain.User, id string, patch CasePatch) (*domain.Case, error) {
	existing, err := s.GetCase(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	fields := validation.Fields{}
	fields.Set("status", patch.Status)
	fields.Set("type", patch.Type)
	fields.Set("licenseNumber", patch.LicenseNumber)
	fields.Set("ownerFullName", patch.OwnerFullName)
	fields.Set("date", patch.Date)
	if err := checkFields(s.validator, fields, validation.CaseUpdateRules); err != nil {
		return nil, err
	}

	updated := *existing
	if patch.Status != nil {
		updated.Status = domain.CaseStatus(*patch.Status)
	}
	if patch.LicenseNumber != nil {
		updated.LicenseNumber = *patch.LicenseNumber
	}
	if patch.OwnerFullName != nil {
		updated.OwnerFullName = *patch.OwnerFullName
	}
	if patch.Type != nil {
		updated.Type = domain.CaseType(*patch.Type)
	}
	if patch.Color != nil {
		updated.Color = nonEmpty(patch.Color)
	}
	if patch.Date != nil {
		if updated.Date, err = parseOptionalDate(patch.Date); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		updated.Description = nonEmpty(patch.Description)
	}
	if patch.Resolution != nil {
		updated.Resolution = nonEmpty(patch.Resolution)
	}
	if patch.Officer != nil {
		if *patch.Officer == "" {
			updated.OfficerID = nil
		} else {
			officerID, err := s.resolveOfficer(ctx, caller.TenantID, *patch.Officer)
			if err != nil {
				return nil, err
			}
			if officerID != nil {
				updated.OfficerID = officerID
			}
		}
	}
	now := s.now().UTC()
	updated.UpdatedAt = &now

	if err := s.cases.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewOperationFailed(fmt.Sprintf("failed to update case with id %s", id))
		}
		return nil, apperrors.NewInternalError(err)
	}

	if updated.Status != existing.Status {
		s.events.publish(ctx, events.Event{
			Type:      events.EventCaseStatusChanged,
			TenantID:  updated.TenantID,
			SubjectID: updated.ID,
			ActorID:   &caller.ID,
			Payload:   events.CaseStatusChangedPayload{OldStatus: existing.Status, NewStatus: updated.Status},
		})
	}
	if !sameRef(existing.OfficerID, updated.OfficerID) {
		s.events.publish(ctx, events.Event{
			Type:      events.EventCaseAssigned,
			TenantID:  updated.TenantID,
			SubjectID: updated.ID,
			ActorID:   &caller.ID,
			Payload:   events.CaseAssignedPayload{OfficerID: updated.OfficerID},
		})
	}
	return &updated, nil
}

// DeleteCase removes a case of the caller's tenant.
func (s *CaseService) DeleteCase(ctx context.Context, caller *domain.User, id string) error {
	if _, err := s.GetCase(ctx, caller, id); err != nil {
		return err
	}
	deleted, err := s.cases.Delete(ctx, caller.TenantID, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if deleted != 1 {
		return apperrors.NewOperationFailed(fmt.Sprintf("failed to delete case with id %s", id))
	}
	return nil
}

// ListCases returns the cases of the caller's tenant.
func (s *CaseService) ListCases(ctx context.Context, caller *domain.User, filter CaseListFilter) ([]domain.Case, error) {
	if filter.OfficerID != nil && !validID(*filter.OfficerID) {
		return nil, apperrors.NewInvalidID()
	}
	fields := validation.Fields{}
	fields.Set("status", filter.Status)
	if err := checkFields(s.validator, fields, validation.CaseListRules); err != nil {
		return nil, err
	}

	repoFilter := repository.CaseFilter{TenantID: caller.TenantID, OfficerID: filter.OfficerID}
	if filter.Status != nil {
		status := domain.CaseStatus(*filter.Status)
		repoFilter.Status = &status
	}
	cases, err := s.cases.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return cases, nil
}

// GetCase fetches a case of the caller's tenant. Cases of other tenants are
// reported as unknown.
func (s *CaseService) GetCase(ctx context.Context, caller *domain.User, id string) (*domain.Case, error) {
	if !validID(id) {
		return nil, apperrors.NewInvalidID()
	}
	c, err := s.cases.GetByID(ctx, caller.TenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnknownCase(id)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return c, nil
}

// resolveOfficer returns the id of the officer when it names an account of
// tenantID, and nil otherwise.
func (s *CaseService) resolveOfficer(ctx context.Context, tenantID, officerID string) (*string, error) {
	if !validID(officerID) {
		return nil, nil
	}
	officer, err := s.users.GetInTenant(ctx, tenantID, officerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	return &officer.ID, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := validation.ParseDate(*value)
	if err != nil {
		return nil, apperrors.NewBadRequest("request validation failed: date value is not valid")
	}
	return &date, nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

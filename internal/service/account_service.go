package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/repository"
	"github.com/spec-kit/case-service/internal/validation"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// AccountService owns accounts: registration, sign-in, approval and officer management.
type AccountService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	validator  *validation.Validator
	events     publisher
	bcryptCost int
}

// AccountDependencies encapsulates collaborators of the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Validator  *validation.Validator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// SignUpInput is the registration payload.
type SignUpInput struct {
	Email    string
	Password string
	TenantID string
}

// OfficerCreateInput describes a new officer of the caller's tenant.
type OfficerCreateInput struct {
	Email     string
	Password  string
	FirstName *string
	LastName  *string
	Approved  *bool
}

// OfficerPatch lists officer fields to change. Nil fields are left untouched;
// an empty name clears it.
type OfficerPatch struct {
	Password  *string
	FirstName *string
	LastName  *string
	Approved  *bool
}

// NewAccountService builds the service.
func NewAccountService(cfg config.AuthConfig, deps AccountDependencies) *AccountService {
	v := deps.Validator
	if v == nil {
		v = validation.New()
	}
	return &AccountService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		validator:  v,
		events:     publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates an account. The first account of a tenant is approved,
// later ones wait for approval by a member. No token is issued.
func (s *AccountService) Register(ctx context.Context, input SignUpInput) (*domain.User, error) {
	fields := validation.Fields{"tenantId": input.TenantID, "email": input.Email, "password": input.Password}
	if err := checkFields(s.validator, fields, validation.SignUpRules); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		TenantID:     input.TenantID,
	}
	if err := s.users.CreateInTenant(ctx, user); err != nil {
		return nil, s.createError(err, input.Email)
	}
	return user, nil
}

// Authenticate verifies credentials and issues a signed token.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, *domain.Token, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewUnknownUser(fmt.Sprintf("user with email %s does not exist", email))
		}
		return nil, nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, nil, apperrors.NewInvalidPassword()
		}
		return nil, nil, apperrors.NewInternalError(err)
	}
	token, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// CreateOfficer adds an account to the caller's tenant. It starts unapproved
// unless the caller approves it explicitly.
func (s *AccountService) CreateOfficer(ctx context.Context, caller *domain.User, input OfficerCreateInput) (*domain.User, error) {
	fields := validation.Fields{"email": input.Email, "password": input.Password}
	if err := checkFields(s.validator, fields, validation.OfficerCreateRules); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	officer := &domain.User{
		Email:        input.Email,
		FirstName:    nonEmpty(input.FirstName),
		LastName:     nonEmpty(input.LastName),
		PasswordHash: hash,
		TenantID:     caller.TenantID,
		Approved:     input.Approved != nil && *input.Approved,
	}
	if err := s.users.Create(ctx, officer); err != nil {
		return nil, s.createError(err, input.Email)
	}
	if officer.Approved {
		s.publishApproved(ctx, caller, officer)
	}
	return officer, nil
}

// UpdateOfficer applies patch to an officer of the caller's tenant.
func (s *AccountService) UpdateOfficer(ctx context.Context, caller *domain.User, id string, patch OfficerPatch) (*domain.User, error) {
	officer, err := s.GetOfficer(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	fields := validation.Fields{}
	fields.Set("password", patch.Password)
	if err := checkFields(s.validator, fields, validation.OfficerUpdateRules); err != nil {
		return nil, err
	}

	wasApproved := officer.Approved
	if patch.Password != nil && auth.ComparePassword(officer.PasswordHash, *patch.Password) != nil {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		officer.PasswordHash = hash
	}
	if patch.FirstName != nil {
		officer.FirstName = nonEmpty(patch.FirstName)
	}
	if patch.LastName != nil {
		officer.LastName = nonEmpty(patch.LastName)
	}
	if patch.Approved != nil {
		officer.Approved = *patch.Approved
	}

	if err := s.users.Update(ctx, officer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewOperationFailed(fmt.Sprintf("failed to update officer with id %s", id))
		}
		return nil, apperrors.NewInternalError(err)
	}
	if officer.Approved && !wasApproved {
		s.publishApproved(ctx, caller, officer)
	}
	return officer, nil
}

// DeleteOfficer removes an officer of the caller's tenant.
func (s *AccountService) DeleteOfficer(ctx context.Context, caller *domain.User, id string) error {
	if _, err := s.GetOfficer(ctx, caller, id); err != nil {
		return err
	}
	deleted, err := s.users.Delete(ctx, caller.TenantID, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if deleted != 1 {
		return apperrors.NewOperationFailed(fmt.Sprintf("failed to delete officer with id %s", id))
	}
	return nil
}

// ListOfficers returns the accounts of the caller's tenant.
func (s *AccountService) ListOfficers(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	officers, err := s.users.ListByTenant(ctx, caller.TenantID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return officers, nil
}

// GetOfficer fetches an account of the caller's tenant. Accounts of other
// tenants are reported as unknown.
func (s *AccountService) GetOfficer(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, apperrors.NewInvalidID()
	}
	officer, err := s.users.GetInTenant(ctx, caller.TenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnknownUser(fmt.Sprintf("officer with id %s does not exist", id))
		}
		return nil, apperrors.NewInternalError(err)
	}
	return officer, nil
}

func (s *AccountService) createError(err error, email string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return apperrors.NewUserExists(email)
	}
	return apperrors.NewInternalError(err)
}

func (s *AccountService) publishApproved(ctx context.Context, caller, officer *domain.User) {
	s.events.publish(ctx, events.Event{
		Type:      events.EventOfficerApproved,
		TenantID:  officer.TenantID,
		SubjectID: officer.ID,
		ActorID:   &caller.ID,
	})
}

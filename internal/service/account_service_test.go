package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

func TestRegisterApprovesOnlyFirstAccountOfTenant(t *testing.T) {
	f := newFixture(t)

	first := f.register(t, "a@x.com", "t1")
	second := f.register(t, "b@x.com", "t1")
	otherTenant := f.register(t, "c@x.com", "t2")

	require.True(t, first.Approved)
	require.False(t, second.Approved)
	require.True(t, otherTenant.Approved)
	require.NotEqual(t, "pw1", first.PasswordHash)
}

func TestRegisterEmailIsGloballyUnique(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@x.com", "t1")

	_, err := f.accounts.Register(context.Background(), service.SignUpInput{Email: "a@x.com", Password: "pw2", TenantID: "t2"})
	requireCode(t, err, apperrors.CodeUserExists)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	inputs := []service.SignUpInput{
		{Email: "a@x.com", Password: "pw1"},
		{Email: "not-an-email", Password: "pw1", TenantID: "t1"},
		{Email: "a@x.com", Password: "pw", TenantID: "t1"},
		{Email: "a@x.com", Password: "thirteenchars", TenantID: "t1"},
	}
	for _, input := range inputs {
		_, err := f.accounts.Register(context.Background(), input)
		requireCode(t, err, apperrors.CodeBadRequest)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@x.com", "t1")
	ctx := context.Background()

	_, _, err := f.accounts.Authenticate(ctx, "missing@x.com", "pw1")
	requireCode(t, err, apperrors.CodeUnknownUser)

	_, _, err = f.accounts.Authenticate(ctx, "a@x.com", "wrong")
	requireCode(t, err, apperrors.CodeInvalidPassword)

	signedIn, token, err := f.accounts.Authenticate(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, user.ID, signedIn.ID)

	claims, err := f.accounts.TokenManager().ParseToken(token.Value)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestCreateOfficerInheritsCallerTenant(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "a@x.com", "t1")
	ctx := context.Background()

	officer, err := f.accounts.CreateOfficer(ctx, admin, service.OfficerCreateInput{
		Email:     "o@x.com",
		Password:  "secret",
		FirstName: strPtr("Olga"),
	})
	require.NoError(t, err)
	require.Equal(t, "t1", officer.TenantID)
	require.False(t, officer.Approved)
	require.Equal(t, "Olga", *officer.FirstName)
	require.Nil(t, officer.LastName)
	require.NoError(t, auth.ComparePassword(officer.PasswordHash, "secret"))

	approved, err := f.accounts.CreateOfficer(ctx, admin, service.OfficerCreateInput{
		Email:    "p@x.com",
		Password: "secret",
		Approved: boolPtr(true),
	})
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.Equal(t, []events.EventType{events.EventOfficerApproved}, f.recorder.types())

	_, err = f.accounts.CreateOfficer(ctx, admin, service.OfficerCreateInput{Email: "o@x.com", Password: "secret"})
	requireCode(t, err, apperrors.CodeUserExists)

	_, err = f.accounts.CreateOfficer(ctx, admin, service.OfficerCreateInput{Email: "bad", Password: "secret"})
	requireCode(t, err, apperrors.CodeBadRequest)
}

func TestUpdateOfficer(t *testing.T) {
	f := newFixture(t)
	admin := f.register(t, "a@x.com", "t1")
	ctx := context.Background()
	officer, err := f.accounts.CreateOfficer(ctx, admin, service.OfficerCreateInput{
		Email:     "o@x.com",
		Password:  "secret",
		FirstName: strPtr("Olga"),
		LastName:  strPtr("Ivanova"),
		Approved:  boolPtr(true),
	})
	require.NoError(t, err)
	originalHash := officer.PasswordHash

	t.Run("same password keeps hash", func(t *testing.T) {
		updated, err := f.accounts.UpdateOfficer(ctx, admin, officer.ID, service.OfficerPatch{Password: strPtr("secret")})
		require.NoError(t, err)
		require.Equal(t, originalHash, updated.PasswordHash)
	})

	t.Run("explicit false clears approval", func(t *testing.T) {
		updated, err := f.accounts.UpdateOfficer(ctx, admin, officer.ID, service.OfficerPatch{Approved: boolPtr(false)})
		require.NoError(t, err)
		require.False(t, updated.Approved)
		require.Equal(t, "Olga", *updated.FirstName)
	})

	t.Run("omitted approval is kept", func(t *testing.T) {
		updated, err := f.accounts.UpdateOfficer(ctx, admin, officer.ID, service.OfficerPatch{LastName: strPtr("Petrova")})
		require.NoError(t, err)
		require.False(t, updated.Approved)
		require.Equal(t, "Petrova", *updated.LastName)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		updated, err := f.accounts.UpdateOfficer(ctx, admin, officer.ID, service.OfficerPatch{Password: strPtr("another")})
		require.NoError(t, err)
		require.NotEqual(t, originalHash, updated.PasswordHash)
		require.NoError(t, auth.ComparePassword(updated.PasswordHash, "another"))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := f.accounts.UpdateOfficer(ctx, admin, "not-an-id", service.OfficerPatch{})
		requireCode(t, err, apperrors.CodeInvalidID)

		_, err = f.accounts.UpdateOfficer(ctx, admin, uuid.NewString(), service.OfficerPatch{})
		requireCode(t, err, apperrors.CodeUnknownUser)

		_, err = f.accounts.UpdateOfficer(ctx, admin, officer.ID, service.OfficerPatch{Password: strPtr("pw")})
		requireCode(t, err, apperrors.CodeBadRequest)
	})
}

func TestOfficerOperationsAreTenantScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	adminT1 := f.register(t, "a@x.com", "t1")
	peerT1 := f.register(t, "b@x.com", "t1")
	adminT2 := f.register(t, "c@x.com", "t2")

	officers, err := f.accounts.ListOfficers(ctx, adminT1)
	require.NoError(t, err)
	require.Len(t, officers, 2)
	for _, officer := range officers {
		require.Equal(t, "t1", officer.TenantID)
	}

	_, err = f.accounts.GetOfficer(ctx, adminT2, peerT1.ID)
	requireCode(t, err, apperrors.CodeUnknownUser)

	_, err = f.accounts.UpdateOfficer(ctx, adminT2, peerT1.ID, service.OfficerPatch{Approved: boolPtr(true)})
	requireCode(t, err, apperrors.CodeUnknownUser)

	err = f.accounts.DeleteOfficer(ctx, adminT2, peerT1.ID)
	requireCode(t, err, apperrors.CodeUnknownUser)

	got, err := f.accounts.GetOfficer(ctx, adminT1, peerT1.ID)
	require.NoError(t, err)
	require.Equal(t, "b@x.com", got.Email)
}

func TestDeleteOfficer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "a@x.com", "t1")
	peer := f.register(t, "b@x.com", "t1")

	requireCode(t, f.accounts.DeleteOfficer(ctx, admin, "123"), apperrors.CodeInvalidID)
	requireCode(t, f.accounts.DeleteOfficer(ctx, admin, uuid.NewString()), apperrors.CodeUnknownUser)

	require.NoError(t, f.accounts.DeleteOfficer(ctx, admin, peer.ID))
	requireCode(t, f.accounts.DeleteOfficer(ctx, admin, peer.ID), apperrors.CodeUnknownUser)
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
)

func TestMemoryUsersApproveFirstAccountPerTenant(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryStore().Users()

	first := &domain.User{Email: "a@x.com", TenantID: "t1"}
	second := &domain.User{Email: "b@x.com", TenantID: "t1"}
	other := &domain.User{Email: "c@x.com", TenantID: "t2"}
	require.NoError(t, users.CreateInTenant(ctx, first))
	require.NoError(t, users.CreateInTenant(ctx, second))
	require.NoError(t, users.CreateInTenant(ctx, other))

	require.True(t, first.Approved)
	require.False(t, second.Approved)
	require.True(t, other.Approved)
	require.NotEmpty(t, first.ID)
}

func TestMemoryUsersRejectDuplicateEmailAcrossTenants(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryStore().Users()

	require.NoError(t, users.CreateInTenant(ctx, &domain.User{Email: "a@x.com", TenantID: "t1"}))
	err := users.Create(ctx, &domain.User{Email: "a@x.com", TenantID: "t2"})
	require.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestMemoryCasesAreTenantScoped(t *testing.T) {
	ctx := context.Background()
	cases := repository.NewMemoryStore().Cases()

	c := &domain.Case{TenantID: "t1", Status: domain.CaseStatusNew, CreatedAt: time.Now()}
	require.NoError(t, cases.Create(ctx, c))

	_, err := cases.GetByID(ctx, "t2", c.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := cases.List(ctx, repository.CaseFilter{TenantID: "t2"})
	require.NoError(t, err)
	require.Empty(t, list)

	n, err := cases.Delete(ctx, "t2", c.ID)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = cases.Delete(ctx, "t1", c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestMemoryCasesListFilters(t *testing.T) {
	ctx := context.Background()
	cases := repository.NewMemoryStore().Cases()
	officer := "officer-1"

	require.NoError(t, cases.Create(ctx, &domain.Case{TenantID: "t1", Status: domain.CaseStatusNew, CreatedAt: time.Now()}))
	require.NoError(t, cases.Create(ctx, &domain.Case{TenantID: "t1", Status: domain.CaseStatusDone, OfficerID: &officer, CreatedAt: time.Now()}))

	done := domain.CaseStatusDone
	list, err := cases.List(ctx, repository.CaseFilter{TenantID: "t1", Status: &done})
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = cases.List(ctx, repository.CaseFilter{TenantID: "t1", OfficerID: &officer})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, domain.CaseStatusDone, list[0].Status)
}

func TestMemoryUserDeleteUnassignsCases(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users, cases := store.Users(), store.Cases()

	officer := &domain.User{Email: "o@x.com", TenantID: "t1"}
	require.NoError(t, users.CreateInTenant(ctx, officer))
	assigned := &domain.Case{TenantID: "t1", Status: domain.CaseStatusNew, CreatedAt: time.Now(), OfficerID: &officer.ID}
	require.NoError(t, cases.Create(ctx, assigned))

	n, err := users.Delete(ctx, "t1", officer.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := cases.GetByID(ctx, "t1", assigned.ID)
	require.NoError(t, err)
	require.Nil(t, got.OfficerID)
}

package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/case-service/internal/domain"
)

// MemoryStore keeps accounts and cases in process memory. It backs the
// service when no database is configured and is used by tests.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]domain.User
	cases map[string]domain.Case
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]domain.User),
		cases: make(map[string]domain.Case),
	}
}

// Users returns a UserRepository view of the store.
func (m *MemoryStore) Users() UserRepository {
	return memoryUsers{m}
}

// Cases returns a CaseRepository view of the store.
func (m *MemoryStore) Cases() CaseRepository {
	return memoryCases{m}
}

type memoryUsers struct{ *MemoryStore }

func (r memoryUsers) CreateInTenant(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.Approved = true
	for _, existing := range r.users {
		if existing.TenantID == user.TenantID {
			user.Approved = false
			break
		}
	}
	return r.insertLocked(user)
}

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(user)
}

func (r memoryUsers) insertLocked(user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	user.ID = uuid.NewString()
	r.users[user.ID] = *user
	return nil
}

func (r memoryUsers) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok || existing.TenantID != user.TenantID {
		return ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r memoryUsers) Delete(_ context.Context, tenantID, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[id]
	if !ok || existing.TenantID != tenantID {
		return 0, nil
	}
	delete(r.users, id)
	// mirrors ON DELETE SET NULL on cases.officer_id
	for caseID, c := range r.cases {
		if c.OfficerID != nil && *c.OfficerID == id {
			c.OfficerID = nil
			r.cases[caseID] = c
		}
	}
	return 1, nil
}

func (r memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r memoryUsers) GetInTenant(ctx context.Context, tenantID, id string) (*domain.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return user, nil
}

func (r memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryUsers) ListByTenant(_ context.Context, tenantID string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []domain.User{}
	for _, user := range r.users {
		if user.TenantID == tenantID {
			result = append(result, user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

type memoryCases struct{ *MemoryStore }

func (r memoryCases) Create(_ context.Context, c *domain.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.NewString()
	r.cases[c.ID] = *c
	return nil
}

func (r memoryCases) Update(_ context.Context, c *domain.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.cases[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	r.cases[c.ID] = *c
	return nil
}

func (r memoryCases) Delete(_ context.Context, tenantID, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.cases[id]
	if !ok || existing.TenantID != tenantID {
		return 0, nil
	}
	delete(r.cases, id)
	return 1, nil
}

func (r memoryCases) GetByID(_ context.Context, tenantID, id string) (*domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[id]
	if !ok || c.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r memoryCases) List(_ context.Context, filter CaseFilter) ([]domain.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []domain.Case{}
	for _, c := range r.cases {
		if c.TenantID != filter.TenantID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.OfficerID != nil && (c.OfficerID == nil || *c.OfficerID != *filter.OfficerID) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/case-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	// CreateInTenant inserts user, approving it when it is the first account
	// of its tenant. Returns ErrDuplicateKey when the email is taken.
	CreateInTenant(ctx context.Context, user *domain.User) error
	// Create inserts user as is. Returns ErrDuplicateKey when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, tenantID, id string) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetInTenant(ctx context.Context, tenantID, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error)
}

const userColumns = `id, email, first_name, last_name, password_hash, tenant_id, approved`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) CreateInTenant(ctx context.Context, user *domain.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Serializes registrations per tenant so only one account sees an empty tenant.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, user.TenantID); err != nil {
		return err
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id=$1`, user.TenantID).Scan(&count); err != nil {
		return err
	}
	user.Approved = count == 0

	if err := insertUser(ctx, tx, user); err != nil {
		return translate(err)
	}
	return tx.Commit(ctx)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return translate(insertUser(ctx, r.pool, user))
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertUser(ctx context.Context, q queryRower, user *domain.User) error {
	const query = `
        INSERT INTO users (email, first_name, last_name, password_hash, tenant_id, approved)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	return q.QueryRow(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.TenantID,
		user.Approved,
	).Scan(&user.ID)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, password_hash=$3, approved=$4
        WHERE id=$5 AND tenant_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Approved,
		user.ID,
		user.TenantID,
	)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, tenantID, id string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1 AND tenant_id=$2`, id, tenantID)
	if err != nil {
		return 0, translate(err)
	}
	return cmd.RowsAffected(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetInTenant(ctx context.Context, tenantID, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1 AND tenant_id=$2`, id, tenantID)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE tenant_id=$1 ORDER BY email`, tenantID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.TenantID,
		&user.Approved,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/case-service/internal/domain"
)

// CaseFilter narrows tenant case listings.
type CaseFilter struct {
	TenantID  string
	Status    *domain.CaseStatus
	OfficerID *string
}

// CaseRepository encapsulates case persistence. Every lookup is scoped to a tenant.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, tenantID, id string) (int64, error)
	GetByID(ctx context.Context, tenantID, id string) (*domain.Case, error)
	List(ctx context.Context, filter CaseFilter) ([]domain.Case, error)
}

var caseColumns = []string{
	"id", "status", "license_number", "owner_full_name", "type", "tenant_id",
	"created_at", "updated_at", "color", "date", "officer_id", "description", "resolution",
}

type caseRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	query, args, err := r.sb.
		Insert("cases").
		Columns("status", "license_number", "owner_full_name", "type", "tenant_id",
			"created_at", "color", "date", "officer_id", "description", "resolution").
		Values(c.Status, c.LicenseNumber, c.OwnerFullName, c.Type, c.TenantID,
			c.CreatedAt, c.Color, c.Date, c.OfficerID, c.Description, c.Resolution).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return translate(r.pool.QueryRow(ctx, query, args...).Scan(&c.ID))
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	query, args, err := r.sb.
		Update("cases").
		SetMap(map[string]any{
			"status":          c.Status,
			"license_number":  c.LicenseNumber,
			"owner_full_name": c.OwnerFullName,
			"type":            c.Type,
			"updated_at":      c.UpdatedAt,
			"color":           c.Color,
			"date":            c.Date,
			"officer_id":      c.OfficerID,
			"description":     c.Description,
			"resolution":      c.Resolution,
		}).
		Where(sq.Eq{"id": c.ID, "tenant_id": c.TenantID}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, tenantID, id string) (int64, error) {
	query, args, err := r.sb.
		Delete("cases").
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return 0, err
	}
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, translate(err)
	}
	return cmd.RowsAffected(), nil
}

func (r *caseRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Case, error) {
	query, args, err := r.sb.
		Select(caseColumns...).
		From("cases").
		Where(sq.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	c, err := scanCase(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *caseRepository) List(ctx context.Context, filter CaseFilter) ([]domain.Case, error) {
	where := sq.Eq{"tenant_id": filter.TenantID}
	if filter.Status != nil {
		where["status"] = *filter.Status
	}
	if filter.OfficerID != nil {
		where["officer_id"] = *filter.OfficerID
	}

	query, args, err := r.sb.
		Select(caseColumns...).
		From("cases").
		Where(where).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Case{}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCase(row scanner) (*domain.Case, error) {
	var c domain.Case
	if err := row.Scan(
		&c.ID,
		&c.Status,
		&c.LicenseNumber,
		&c.OwnerFullName,
		&c.Type,
		&c.TenantID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Color,
		&c.Date,
		&c.OfficerID,
		&c.Description,
		&c.Resolution,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

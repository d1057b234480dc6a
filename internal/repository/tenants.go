package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/jmoiron/sqlx"
)

// TenantsRepository is the read-only view of the tenant directory owned by
// the property-management side. Resend resolves recipients through it by
// phone number.
type TenantsRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Tenant, error)
	GetByPhone(ctx context.Context, phone string) (*model.Tenant, error)
}

type TenantsRepositoryImpl struct {
	db *sqlx.DB
}

func NewTenantsRepository(db *sqlx.DB) *TenantsRepositoryImpl {
	return &TenantsRepositoryImpl{db: db}
}

var _ TenantsRepository = (*TenantsRepositoryImpl)(nil)

const tenantColumns = `id, full_name, phone, unit_number, expected_rent, active, created_at, updated_at`

func (r *TenantsRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.GetContext(ctx, &t, `
		SELECT `+tenantColumns+`
		  FROM tenants
		 WHERE id = ? AND active = 1 LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TenantsRepositoryImpl) GetByPhone(ctx context.Context, phone string) (*model.Tenant, error) {
	var t model.Tenant
	err := r.db.GetContext(ctx, &t, `
		SELECT `+tenantColumns+`
		  FROM tenants
		 WHERE phone = ? AND active = 1 LIMIT 1
	`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

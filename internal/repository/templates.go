package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/jmoiron/sqlx"
)

// TemplatesRepository defines persistence for the templates table.
type TemplatesRepository interface {
	Insert(ctx context.Context, t model.Template) error
	Update(ctx context.Context, t model.Template) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Template, error)
	List(ctx context.Context, f TemplateFilter) ([]model.Template, error)
	FirstActive(ctx context.Context, category model.TemplateCategory, variant string) (*model.Template, error)
}

// TemplateFilter narrows List; zero value lists everything.
type TemplateFilter struct {
	Category   model.TemplateCategory
	Variant    string
	ActiveOnly bool
}

type TemplatesRepositoryImpl struct {
	db *sqlx.DB
}

func NewTemplatesRepository(db *sqlx.DB) *TemplatesRepositoryImpl {
	return &TemplatesRepositoryImpl{db: db}
}

var _ TemplatesRepository = (*TemplatesRepositoryImpl)(nil)

func (r *TemplatesRepositoryImpl) Insert(ctx context.Context, t model.Template) error {
	const q = `
		INSERT INTO templates
		    (id, name, category, variant, body, active, created_at, updated_at)
		VALUES
		    (?,  ?,    ?,        ?,       ?,    ?,      NOW(),      NOW())
	`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.Name, t.Category.String(), t.Variant, t.Body, t.Active,
	)
	return err
}

func (r *TemplatesRepositoryImpl) Update(ctx context.Context, t model.Template) error {
	const q = `
		UPDATE templates
		   SET name = ?, category = ?, variant = ?, body = ?, active = ?, updated_at = NOW()
		 WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, q,
		t.Name, t.Category.String(), t.Variant, t.Body, t.Active, t.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *TemplatesRepositoryImpl) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *TemplatesRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Template, error) {
	var t model.Template
	err := r.db.GetContext(ctx, &t, `
		SELECT id, name, category, variant, body, active, created_at, updated_at
		  FROM templates
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns templates in insertion order.
func (r *TemplatesRepositoryImpl) List(ctx context.Context, f TemplateFilter) ([]model.Template, error) {
	q := `
		SELECT id, name, category, variant, body, active, created_at, updated_at
		  FROM templates
		 WHERE 1 = 1
	`
	args := []any{}

	if f.Category != "" {
		q += " AND category = ?"
		args = append(args, f.Category.String())
	}
	if f.Variant != "" {
		q += " AND variant = ?"
		args = append(args, f.Variant)
	}
	if f.ActiveOnly {
		q += " AND active = 1"
	}

	q += " ORDER BY created_at ASC, id ASC"

	rows := []model.Template{}
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// FirstActive picks the oldest active template for a category, optionally
// narrowed by variant. Used by the receipt/reminder convenience sends.
func (r *TemplatesRepositoryImpl) FirstActive(ctx context.Context, category model.TemplateCategory, variant string) (*model.Template, error) {
	q := `
		SELECT id, name, category, variant, body, active, created_at, updated_at
		  FROM templates
		 WHERE active = 1 AND category = ?
	`
	args := []any{category.String()}

	if variant != "" {
		q += " AND variant = ?"
		args = append(args, variant)
	}

	q += " ORDER BY created_at ASC, id ASC LIMIT 1"

	var t model.Template
	err := r.db.GetContext(ctx, &t, q, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

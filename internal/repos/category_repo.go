package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"bagshop/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT id, code, name, created_at, updated_at
  FROM categories
  WHERE deleted_at IS NULL
  ORDER BY id
`)
	return out, err
}

func (r *CategoryRepo) ByCode(ctx context.Context, code domain.CategoryCode) (domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
  SELECT id, code, name, created_at, updated_at
  FROM categories
  WHERE code = ? AND deleted_at IS NULL
`), string(code))
	return c, err
}

package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"bagshop/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Every read joins the category and drops soft-deleted rows on both sides.
const productSelect = `
  SELECT
    p.id, p.name, p.price, p.image_url, p.category_id,
    c.code AS category_code, c.name AS category_name,
    COALESCE(p.description, '') AS description, COALESCE(p.color, '') AS color,
    p.is_new, p.is_best, p.view_count, p.sales_count, p.created_at, p.updated_at
  FROM products p
  JOIN categories c ON c.id = p.category_id
  WHERE p.deleted_at IS NULL AND c.deleted_at IS NULL`

// List returns live products, restricted to one category when code is non-empty.
func (r *ProductRepo) List(ctx context.Context, code domain.CategoryCode) ([]domain.Product, error) {
	q := productSelect
	args := []any{}
	if code != "" {
		q += ` AND c.code = ?`
		args = append(args, string(code))
	}
	q += ` ORDER BY p.id DESC`
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...)
	return out, err
}

func (r *ProductRepo) ListNew(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(productSelect+` AND p.is_new = ? ORDER BY p.id DESC`), true)
	return out, err
}

func (r *ProductRepo) ListBest(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(productSelect+` AND p.is_best = ? ORDER BY p.id DESC`), true)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(productSelect+` AND p.id = ?`), id)
	return p, err
}

// Create inserts p and returns its id.
func (r *ProductRepo) Create(ctx context.Context, p domain.NewProduct) (int64, error) {
	now := time.Now().UTC()
	var desc, color any
	if p.Description != "" {
		desc = p.Description
	}
	if p.Color != "" {
		color = p.Color
	}
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
		INSERT INTO products(name, price, image_url, category_id, description, color, is_new, is_best, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`),
		p.Name, p.Price, p.ImageURL, p.CategoryID, desc, color, p.IsNew, p.IsBest, now, now,
	).Scan(&id)
	return id, err
}

// SoftDelete stamps deleted_at; the row stays for history.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE products SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`), now, now, id)
	return err
}

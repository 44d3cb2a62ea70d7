package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"bagshop/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// AddItem finds or creates the user's cart and merges quantity into the line for
// productID, all in one transaction. carts.user_id and (cart_id, product_id) are
// unique, so concurrent first adds converge on one cart and one line. The merged
// quantity is capped at domain.MaxLineQuantity.
func (r *CartRepo) AddItem(ctx context.Context, userNo, productID int64, qty int) error {
	if qty > domain.MaxLineQuantity {
		qty = domain.MaxLineQuantity
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cartID, err := ensureCart(ctx, tx, userNo)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO cart_items(cart_id, product_id, quantity, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(cart_id, product_id) DO UPDATE
		SET quantity = CASE
		      WHEN cart_items.quantity + excluded.quantity > ? THEN ?
		      ELSE cart_items.quantity + excluded.quantity
		    END,
		    updated_at = excluded.updated_at
	`), cartID, productID, qty, now, now, domain.MaxLineQuantity, domain.MaxLineQuantity); err != nil {
		return err
	}
	return tx.Commit()
}

func ensureCart(ctx context.Context, tx *sqlx.Tx, userNo int64) (int64, error) {
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO carts(user_id, created_at) VALUES(?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`), userNo, time.Now().UTC()); err != nil {
		return 0, err
	}
	var cartID int64
	if err := tx.GetContext(ctx, &cartID, tx.Rebind(`SELECT id FROM carts WHERE user_id = ?`), userNo); err != nil {
		return 0, err
	}
	return cartID, nil
}

// RemoveItem deletes the user's line for productID. Missing cart or line is not an error.
func (r *CartRepo) RemoveItem(ctx context.Context, userNo, productID int64) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM cart_items
		WHERE product_id = ?
		  AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)
	`), productID, userNo)
	return err
}

// Lines returns the user's cart joined with live products, oldest first.
func (r *CartRepo) Lines(ctx context.Context, userNo int64) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
	  SELECT ci.product_id, ci.quantity, ci.created_at,
	         p.name AS product_name, p.image_url AS product_image_url,
	         COALESCE(p.color, '') AS product_color, p.price AS product_price
	  FROM carts c
	  JOIN cart_items ci ON ci.cart_id = c.id
	  JOIN products p ON p.id = ci.product_id
	  WHERE c.user_id = ? AND p.deleted_at IS NULL
	  ORDER BY ci.created_at, ci.id
	`), userNo)
	return out, err
}

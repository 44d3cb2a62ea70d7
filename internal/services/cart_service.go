package services

import (
	"context"
	"database/sql"
	"errors"

	"bagshop/internal/domain"
	"bagshop/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Get returns the user's cart lines. A user without a cart gets an empty list.
func (s *CartService) Get(ctx context.Context, userNo int64) ([]domain.CartLine, error) {
	lines, err := s.Carts.Lines(ctx, userNo)
	if err != nil {
		return nil, domain.DataAccess("cart lookup failed", err)
	}
	return lines, nil
}

// Add puts qty of productID in the cart, adding to any quantity already there.
// The merged quantity saturates at domain.MaxLineQuantity.
func (s *CartService) Add(ctx context.Context, userNo, productID int64, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if qty > domain.MaxLineQuantity {
		return domain.QuantityTooLarge()
	}
	if _, err := s.Prods.Get(ctx, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return domain.DataAccess("product lookup failed", err)
	}
	if err := s.Carts.AddItem(ctx, userNo, productID, qty); err != nil {
		return domain.DataAccess("cart update failed", err)
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, userNo, productID int64) error {
	if err := s.Carts.RemoveItem(ctx, userNo, productID); err != nil {
		return domain.DataAccess("cart update failed", err)
	}
	return nil
}

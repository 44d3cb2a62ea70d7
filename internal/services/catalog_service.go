package services

import (
	"context"
	"database/sql"
	"errors"

	"bagshop/internal/cache"
	"bagshop/internal/domain"
	"bagshop/internal/repos"
	"bagshop/internal/validate"
)

type CreateProductInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	Price        int64  `json:"price" validate:"gt=0"`
	ImageURL     string `json:"imageUrl" validate:"required,url,max=255"`
	CategoryCode string `json:"categoryCode" validate:"required,category"`
	Description  string `json:"description"`
	Color        string `json:"color" validate:"required,max=50"`
	IsNew        bool   `json:"isNew"`
	IsBest       bool   `json:"isBest"`
}

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Cache *cache.Cache
}

// NewCatalogService wires the catalog. c may be nil to disable caching.
func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, c *cache.Cache) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Cache: c}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out, err := cache.Fetch(ctx, s.Cache, []string{"categories"}, s.Cats.List)
	if err != nil {
		return nil, domain.DataAccess("category lookup failed", err)
	}
	return out, nil
}

// List returns live products, optionally filtered by category code.
func (s *CatalogService) List(ctx context.Context, categoryCode string) ([]domain.Product, error) {
	code, err := validate.CategoryCode(categoryCode)
	if err != nil {
		return nil, err
	}
	key := string(code)
	if key == "" {
		key = "all"
	}
	out, err := cache.Fetch(ctx, s.Cache, []string{"products", key}, func(ctx context.Context) ([]domain.Product, error) {
		return s.Prods.List(ctx, code)
	})
	if err != nil {
		return nil, domain.DataAccess("product lookup failed", err)
	}
	return out, nil
}

func (s *CatalogService) ListNew(ctx context.Context) ([]domain.Product, error) {
	out, err := cache.Fetch(ctx, s.Cache, []string{"products", "new"}, s.Prods.ListNew)
	if err != nil {
		return nil, domain.DataAccess("product lookup failed", err)
	}
	return out, nil
}

func (s *CatalogService) ListBest(ctx context.Context) ([]domain.Product, error) {
	out, err := cache.Fetch(ctx, s.Cache, []string{"products", "best"}, s.Prods.ListBest)
	if err != nil {
		return nil, domain.DataAccess("product lookup failed", err)
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, domain.DataAccess("product lookup failed", err)
	}
	return p, nil
}

// Create validates in, resolves its category and stores the product.
func (s *CatalogService) Create(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, err
	}
	code, err := validate.CategoryCode(in.CategoryCode)
	if err != nil {
		return domain.Product{}, err
	}
	cat, err := s.Cats.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.InvalidCategory(in.CategoryCode)
		}
		return domain.Product{}, domain.DataAccess("category lookup failed", err)
	}

	id, err := s.Prods.Create(ctx, domain.NewProduct{
		Name:        in.Name,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		CategoryID:  cat.ID,
		Description: in.Description,
		Color:       in.Color,
		IsNew:       in.IsNew,
		IsBest:      in.IsBest,
	})
	if err != nil {
		return domain.Product{}, domain.DataAccess("product insert failed", err)
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete soft-deletes a live product.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Prods.SoftDelete(ctx, id); err != nil {
		return domain.DataAccess("product delete failed", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	_ = s.Cache.Bump(ctx)
}

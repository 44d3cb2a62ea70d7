package handlers

import (
	"github.com/jmoiron/sqlx"

	"bagshop/internal/auth"
	"bagshop/internal/cache"
	"bagshop/internal/config"
	"bagshop/internal/repos"
	"bagshop/internal/services"
)

type Deps struct {
	DB     *sqlx.DB
	Tokens *auth.Tokens

	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	CartHandler     *CartHandler
}

// NewDeps builds repositories, services and handlers. c may be nil.
func NewDeps(db *sqlx.DB, cfg config.Config, c *cache.Cache) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	authSvc := services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), tokens)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, c)
	cartSvc := services.NewCartService(cartRepo, prodRepo)

	return &Deps{
		DB:              db,
		Tokens:          tokens,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
	}
}

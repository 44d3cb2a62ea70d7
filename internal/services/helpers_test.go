package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bagshop/internal/auth"
	"bagshop/internal/cache"
	"bagshop/internal/repos"
	"bagshop/internal/services"
)

type env struct {
	db      *sqlx.DB
	auth    *services.AuthService
	cart    *services.CartService
	catalog *services.CatalogService
	tokens  *auth.Tokens
}

func newEnv(t *testing.T, c *cache.Cache) *env {
	t.Helper()
	db, err := repos.OpenDB(context.Background(), "sqlite", ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := repos.NewUserRepo(db)
	prods := repos.NewProductRepo(db)
	cats := repos.NewCategoryRepo(db)
	tokens := auth.NewTokens("test-secret", time.Hour, "bagshop")

	return &env{
		db:      db,
		auth:    services.NewAuthService(users, auth.NewBcryptHasher(bcrypt.MinCost), tokens),
		cart:    services.NewCartService(repos.NewCartRepo(db), prods),
		catalog: services.NewCatalogService(cats, prods, c),
		tokens:  tokens,
	}
}

func redisCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.New(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewCache(client, time.Minute, nil)
}

func signupInput(handle string) services.SignupInput {
	return services.SignupInput{
		Name:            "Kim Bag",
		Email:           handle + "@bagshop.test",
		PhoneNumber:     "01012345678",
		Password:        "abcd123!",
		ConfirmPassword: "abcd123!",
		UserID:          handle,
	}
}

func productInput(code, name string, price int64) services.CreateProductInput {
	return services.CreateProductInput{
		Name:         name,
		Price:        price,
		ImageURL:     "https://img.bagshop.test/" + name + ".jpg",
		CategoryCode: code,
		Color:        "black",
	}
}

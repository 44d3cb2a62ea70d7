package repos_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"bagshop/internal/domain"
	"bagshop/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(context.Background(), "sqlite", ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mkUser(t *testing.T, db *sqlx.DB, handle string) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).Create(context.Background(), domain.NewUser{
		UserID: handle, Email: handle + "@bagshop.test", Name: "Tester", PhoneNumber: "01012345678", Hash: "$2a$hash",
	})
	require.NoError(t, err)
	return u
}

func mkProduct(t *testing.T, db *sqlx.DB, code domain.CategoryCode, name string, price int64, isNew, isBest bool) int64 {
	t.Helper()
	ctx := context.Background()
	cat, err := repos.NewCategoryRepo(db).ByCode(ctx, code)
	require.NoError(t, err)
	id, err := repos.NewProductRepo(db).Create(ctx, domain.NewProduct{
		Name: name, Price: price, ImageURL: "https://img.test/" + name + ".jpg", CategoryID: cat.ID,
		Color: "black", IsNew: isNew, IsBest: isBest,
	})
	require.NoError(t, err)
	return id
}

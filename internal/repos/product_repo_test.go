package repos_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagshop/internal/domain"
	"bagshop/internal/repos"
)

func TestProductListFiltersCategoryAndSoftDeleted(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	prods := repos.NewProductRepo(db)

	twin := mkProduct(t, db, domain.TwinBag, "twin-1", 1000, true, false)
	gone := mkProduct(t, db, domain.TwinBag, "twin-2", 1000, false, true)
	mkProduct(t, db, domain.CloBag, "clo-1", 1000, false, false)
	require.NoError(t, prods.SoftDelete(ctx, gone))

	all, err := prods.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyTwin, err := prods.List(ctx, domain.TwinBag)
	require.NoError(t, err)
	require.Len(t, onlyTwin, 1)
	assert.Equal(t, twin, onlyTwin[0].ID)
	assert.Equal(t, domain.TwinBag, onlyTwin[0].CategoryCode)
	assert.Equal(t, "TWIN BAG", onlyTwin[0].CategoryName)

	best, err := prods.ListBest(ctx)
	require.NoError(t, err)
	assert.Empty(t, best)

	newest, err := prods.ListNew(ctx)
	require.NoError(t, err)
	require.Len(t, newest, 1)
	assert.True(t, newest[0].IsNew)
}

func TestProductGet(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	prods := repos.NewProductRepo(db)
	id := mkProduct(t, db, domain.MinimalBag, "min", 4200, false, true)

	p, err := prods.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "min", p.Name)
	assert.Equal(t, int64(4200), p.Price)
	assert.True(t, p.IsBest)
	assert.False(t, p.CreatedAt.IsZero())

	require.NoError(t, prods.SoftDelete(ctx, id))
	_, err = prods.Get(ctx, id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCategoriesSeeded(t *testing.T) {
	db := memdb(t)
	cats, err := repos.NewCategoryRepo(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, len(domain.CategoryCodes))
	for i, c := range cats {
		assert.Equal(t, domain.CategoryCodes[i], c.Code)
		assert.Equal(t, domain.CategoryNames[c.Code], c.Name)
	}
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	db := memdb(t)
	ctx := context.Background()
	require.NoError(t, repos.SeedDemo(ctx, db))
	require.NoError(t, repos.SeedDemo(ctx, db))

	all, err := repos.NewProductRepo(db).List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

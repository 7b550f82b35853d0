package product

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to the database named by CATALOG_TEST_DSN and
// resets the product tables; these tests run the real store SQL, so
// they only run against a live postgres.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("CATALOG_TEST_DSN")
	if dsn == "" {
		t.Skip("CATALOG_TEST_DSN not set; skipping postgres integration test")
	}

	db, err := storage.NewPostgresDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.Migrate(context.Background(), db))

	_, err = db.Exec(`TRUNCATE order_items, orders, products, categories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func Test_store_createThenGet(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	description := "A reference widget"
	created, err := store.createOne(ctx, &CreateProductRequest{
		SKU:         "SKU-WIDGET",
		Name:        "Widget",
		Description: &description,
		Price:       decimal.RequireFromString("19.99"),
		StockQty:    7,
	})
	require.NoError(t, err)

	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)

	fetched, err := store.findByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)

	// every input field survives the roundtrip
	assert.Equal(t, "SKU-WIDGET", fetched.SKU)
	assert.Equal(t, "Widget", fetched.Name)
	require.NotNil(t, fetched.Description)
	assert.Equal(t, description, *fetched.Description)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 7, fetched.StockQty)
	assert.Nil(t, fetched.CategoryID)

	bySKU, err := store.findBySKU(ctx, "SKU-WIDGET")
	require.NoError(t, err)
	require.NotNil(t, bySKU)
	assert.Equal(t, created.ID, bySKU.ID)
}

func Test_store_findAll_pagination(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	for _, sku := range []string{"SKU-A", "SKU-B", "SKU-C"} {
		_, err := store.createOne(ctx, &CreateProductRequest{
			SKU:   sku,
			Name:  "product " + sku,
			Price: decimal.RequireFromString("1.00"),
		})
		require.NoError(t, err)
	}

	t.Run("window in insertion order", func(t *testing.T) {
		products, err := store.findAll(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "SKU-B", products[0].SKU)
	})

	t.Run("skip past the end returns an empty slice", func(t *testing.T) {
		products, err := store.findAll(ctx, 10, 100)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})
}

func Test_store_updateOne_partial(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	created, err := store.createOne(ctx, &CreateProductRequest{
		SKU:      "SKU-UPD",
		Name:     "Widget",
		Price:    decimal.RequireFromString("10.00"),
		StockQty: 3,
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("12.50")
	updated, err := store.updateOne(ctx, created.ID, &UpdateProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, updated.Price.Equal(newPrice))
	assert.NotNil(t, updated.UpdatedAt)

	// omitted fields keep their prior values
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, 3, updated.StockQty)
	assert.Equal(t, "SKU-UPD", updated.SKU)

	t.Run("absent id reports nil", func(t *testing.T) {
		name := "Ghost"
		updated, err := store.updateOne(ctx, 9999, &UpdateProductRequest{
			Name: &name,
		})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})
}

func Test_store_deleteOne_idempotentReporting(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	created, err := store.createOne(ctx, &CreateProductRequest{
		SKU:   "SKU-DEL",
		Name:  "Widget",
		Price: decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	deleted, err := store.deleteOne(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.deleteOne(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	fetched, err := store.findByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

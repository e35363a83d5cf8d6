package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenbloom/catalog"
	"greenbloom/models"
	"greenbloom/store"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(store.New(store.NewMemoryBackend()))
}

func product(t *testing.T, id int) models.Product {
	t.Helper()
	p, err := catalog.ProductByID(id)
	require.NoError(t, err)
	return p
}

func TestAddSameProductMergesIntoOneLine(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	gloves := product(t, 1)

	for n := 1; n <= 5; n++ {
		lines, err := e.Add(ctx, "v1", gloves)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, n, lines[0].Quantity)
	}

	lines, err := e.Lines(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "Gardening Gloves", lines[0].Name)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, err := e.Add(ctx, "v1", product(t, 2))
	require.NoError(t, err)
	_, err = e.Add(ctx, "v1", product(t, 1))
	require.NoError(t, err)
	lines, err := e.Add(ctx, "v1", product(t, 2))
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].ID)
}

func TestAddRejectsInvalidProduct(t *testing.T) {
	_, err := newEngine(t).Add(context.Background(), "v1", models.Product{ID: 0, Name: "?"})
	assert.Error(t, err)
}

func TestCartsAreIsolatedPerVisitor(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, err := e.Add(ctx, "v1", product(t, 1))
	require.NoError(t, err)

	lines, err := e.Lines(ctx, "v2")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	for i := 0; i < 3; i++ {
		_, err := e.Add(ctx, "v1", product(t, 4))
		require.NoError(t, err)
	}
	_, err := e.Add(ctx, "v1", product(t, 5))
	require.NoError(t, err)

	lines, err := e.UpdateQuantity(ctx, "v1", 0, -3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].ID)
}

func TestUpdateQuantityIncrementsAndDecrements(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	_, err := e.Add(ctx, "v1", product(t, 4))
	require.NoError(t, err)

	lines, err := e.UpdateQuantity(ctx, "v1", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, lines[0].Quantity)

	lines, err = e.UpdateQuantity(ctx, "v1", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, lines[0].Quantity)

	lines, err = e.UpdateQuantity(ctx, "v1", 0, -5)
	require.NoError(t, err)
	assert.Empty(t, lines, "overshooting below zero also removes")
}

func TestOutOfRangeIndexIsNoOp(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	_, err := e.Add(ctx, "v1", product(t, 1))
	require.NoError(t, err)
	before, err := e.Lines(ctx, "v1")
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 42} {
		lines, err := e.UpdateQuantity(ctx, "v1", idx, -1)
		require.NoError(t, err)
		assert.Equal(t, before, lines)

		lines, err = e.Remove(ctx, "v1", idx)
		require.NoError(t, err)
		assert.Equal(t, before, lines)
	}

	after, err := e.Lines(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	for _, id := range []int{1, 2, 3} {
		_, err := e.Add(ctx, "v1", product(t, id))
		require.NoError(t, err)
	}

	lines, err := e.Remove(ctx, "v1", 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, []int{1, 3}, []int{lines[0].ID, lines[1].ID})

	require.NoError(t, e.Clear(ctx, "v1"))
	require.NoError(t, e.Clear(ctx, "v1"), "clearing an empty cart still succeeds")
	lines, err = e.Lines(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))

	lines := []models.CartLine{
		{Product: models.Product{ID: 1, Price: 12.99}, Quantity: 2},
		{Product: models.Product{ID: 2, Price: 24.99}, Quantity: 1},
	}
	assert.Equal(t, 50.97, Total(lines))
}

func TestTotalRoundsToCents(t *testing.T) {
	lines := []models.CartLine{
		{Product: models.Product{ID: 1, Price: 0.1}, Quantity: 3},
		{Product: models.Product{ID: 2, Price: 0.005}, Quantity: 1},
	}
	assert.Equal(t, 0.31, Total(lines))
}

func TestCount(t *testing.T) {
	assert.Zero(t, Count(nil))
	lines := []models.CartLine{{Quantity: 2}, {Quantity: 3}}
	assert.Equal(t, 5, Count(lines))
}

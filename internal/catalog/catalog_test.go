package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestCatalog(t *testing.T, stock int) *Catalog {
	t.Helper()

	c, err := New([]Seed{
		{ID: 1, Name: "Ball", Price: decimal.RequireFromString("799.99"), Image: "/img/ball.jpg", Stock: stock},
		{ID: 2, Name: "Shirt", Price: decimal.RequireFromString("1299.50"), Image: "/img/shirt.jpg", Stock: 8},
	})
	require.NoError(t, err)
	return c
}

func TestLookup(t *testing.T) {
	c := newTestCatalog(t, 5)

	p, err := c.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "Ball", p.Name)
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("799.99")))

	_, err = c.Lookup(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveRelease(t *testing.T) {
	c := newTestCatalog(t, 5)

	require.NoError(t, c.Reserve(1, 2))
	p, _ := c.Lookup(1)
	assert.Equal(t, 3, p.Stock)

	require.NoError(t, c.Release(1, 2))
	p, _ = c.Lookup(1)
	assert.Equal(t, 5, p.Stock)
}

func TestReserve_Insufficient(t *testing.T) {
	c := newTestCatalog(t, 3)

	err := c.Reserve(1, 10)
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)

	p, _ := c.Lookup(1)
	assert.Equal(t, 3, p.Stock, "failed reservation must not touch stock")
}

func TestReserveRelease_BadInput(t *testing.T) {
	c := newTestCatalog(t, 3)

	assert.ErrorIs(t, c.Reserve(1, 0), ErrInvalidAmount)
	assert.ErrorIs(t, c.Reserve(1, -1), ErrInvalidAmount)
	assert.ErrorIs(t, c.Release(1, 0), ErrInvalidAmount)
	assert.ErrorIs(t, c.Reserve(42, 1), ErrNotFound)
	assert.ErrorIs(t, c.Release(42, 1), ErrNotFound)
}

func TestReserve_ConcurrentNeverOversells(t *testing.T) {
	const stock = 50
	c := newTestCatalog(t, stock)

	var g errgroup.Group
	results := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		g.Go(func() error {
			results <- c.Reserve(1, 1) == nil
			return nil
		})
	}
	require.NoError(t, g.Wait())
	close(results)

	granted := 0
	for ok := range results {
		if ok {
			granted++
		}
	}
	assert.Equal(t, stock, granted)

	p, _ := c.Lookup(1)
	assert.Equal(t, 0, p.Stock)
}

func TestList_SeedOrder(t *testing.T) {
	c, err := New(DefaultSeed())
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 10)
	for i, p := range list {
		assert.Equal(t, i+1, p.ID)
	}
	assert.Equal(t, 10, c.Len())
}

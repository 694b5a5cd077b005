package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStore_GetOrCreateReturnsSameCart(t *testing.T) {
	s := NewStore()

	a := s.GetOrCreate("local:a")
	b := s.GetOrCreate("local:a")
	other := s.GetOrCreate("local:b")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, a.Items())
}

func TestStore_ConcurrentGetOrCreate(t *testing.T) {
	s := NewStore()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		carts = make(map[*Cart]struct{})
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := s.GetOrCreate("google:42")
			mu.Lock()
			carts[c] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, carts, 1)
}

func TestStore_Reserved(t *testing.T) {
	s := NewStore()
	s.GetOrCreate("a").items = []Item{{ProductID: 1, Qty: 2}, {ProductID: 2, Qty: 1}}
	s.GetOrCreate("b").items = []Item{{ProductID: 1, Qty: 3}}

	assert.Equal(t, map[int]int{1: 5, 2: 1}, s.Reserved())
}

func TestTotal(t *testing.T) {
	items := []Item{
		{Price: decimal.RequireFromString("100"), Qty: 2},
		{Price: decimal.RequireFromString("50"), Qty: 1},
	}
	assert.True(t, Total(items).Equal(decimal.NewFromInt(250)))
	assert.True(t, Total(nil).IsZero())
}

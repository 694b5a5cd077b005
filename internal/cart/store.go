package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Name, Price and Image are copied from the catalog
// when the line is created and never refreshed.
type Item struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Image     string
	Qty       int
}

// Cart is guarded by its own mutex; Service holds it for the whole of an
// operation.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func (c *Cart) find(productID int) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// snapshot must be called with c.mu held.
func (c *Cart) snapshot() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Store maps principal identifiers to carts. Carts are created on first use and
// live for the lifetime of the process.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

func (s *Store) GetOrCreate(principal string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[principal]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[principal]; ok {
		return c
	}
	c = &Cart{}
	s.carts[principal] = c
	return c
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Reserved sums the quantity held in carts per product id. Each cart is read
// under its own lock, so the sum is consistent per cart, not globally.
func (s *Store) Reserved() map[int]int {
	s.mu.RLock()
	carts := make([]*Cart, 0, len(s.carts))
	for _, c := range s.carts {
		carts = append(carts, c)
	}
	s.mu.RUnlock()

	out := make(map[int]int)
	for _, c := range carts {
		for _, it := range c.Items() {
			out[it.ProductID] += it.Qty
		}
	}
	return out
}

type View struct {
	Items []Item
	Total decimal.Decimal
}

// Total prices every line at its snapshot price.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}

func newView(items []Item) View {
	return View{Items: items, Total: Total(items)}
}

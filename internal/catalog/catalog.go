package catalog

import "sync"

type entry struct {
	mu sync.Mutex
	p  Product
}

// Catalog holds the fixed set of products loaded at startup. The id index is
// never modified after New, so only the per-product stock needs locking.
type Catalog struct {
	order []int
	byID  map[int]*entry
}

func New(seeds []Seed) (*Catalog, error) {
	if err := ValidateSeeds(seeds); err != nil {
		return nil, err
	}

	c := &Catalog{
		order: make([]int, 0, len(seeds)),
		byID:  make(map[int]*entry, len(seeds)),
	}
	for _, s := range seeds {
		c.order = append(c.order, s.ID)
		c.byID[s.ID] = &entry{p: Product{
			ID:    s.ID,
			Name:  s.Name,
			Price: s.Price,
			Image: s.Image,
			Stock: s.Stock,
		}}
	}
	return c, nil
}

func (c *Catalog) Lookup(id int) (Product, error) {
	e, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.p, nil
}

// Reserve takes amount units out of stock, or fails without touching it.
func (c *Catalog) Reserve(id, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	e, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.p.Stock < amount {
		return &InsufficientStockError{ProductID: id, Available: e.p.Stock}
	}
	e.p.Stock -= amount
	return nil
}

// Release returns amount units to stock.
func (c *Catalog) Release(id, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	e, ok := c.byID[id]
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.p.Stock += amount
	return nil
}

// List returns a snapshot of every product in seed order.
func (c *Catalog) List() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		e := c.byID[id]
		e.mu.Lock()
		out = append(out, e.p)
		e.mu.Unlock()
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }

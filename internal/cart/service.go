package cart

import (
	"errors"

	"go.uber.org/zap"

	"MiniCart/internal/catalog"
)

// Catalog is the stock surface the cart engine needs.
type Catalog interface {
	Lookup(productID int) (catalog.Product, error)
	Reserve(productID, amount int) error
	Release(productID, amount int) error
}

// Service keeps catalog stock and cart quantities in step: for every product,
// stock plus the quantity held across all carts equals the seeded stock.
//
// Locking: an operation holds the target cart's lock for its whole duration
// and takes one product lock at a time inside it (through Catalog). Cart locks
// are never taken while a product lock is held, so no cycle can form.
type Service struct {
	catalog Catalog
	store   *Store
	log     *zap.Logger
	metrics *Metrics
}

func NewService(c Catalog, store *Store, log *zap.Logger, metrics *Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog: c,
		store:   store,
		log:     log,
		metrics: metrics,
	}
}

func (s *Service) View(principal string) View {
	c := s.store.GetOrCreate(principal)
	s.metrics.observe("view", nil)
	return newView(c.Items())
}

// Add reserves qty more units of productID for principal. An absent quantity
// means one unit.
func (s *Service) Add(principal string, productID int, qty RawQuantity) (View, error) {
	if !qty.Present() {
		qty = Quantity(1)
	}
	v, err := s.add(principal, productID, qty)
	s.finish("add", principal, productID, err)
	return v, err
}

func (s *Service) add(principal string, productID int, qty RawQuantity) (View, error) {
	n, err := qty.atLeast(1, MsgInvalidAddQty)
	if err != nil {
		return View{}, err
	}
	p, err := s.lookup(productID)
	if err != nil {
		return View{}, err
	}

	c := s.store.GetOrCreate(principal)
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := s.reserveInto(c, p, n); err != nil {
		return View{}, err
	}
	return newView(c.snapshot()), nil
}

// Update sets the line for productID to an absolute quantity, reserving or
// releasing the difference. A target of 0 deletes the line.
func (s *Service) Update(principal string, productID int, qty RawQuantity) (View, error) {
	v, err := s.update(principal, productID, qty)
	s.finish("update", principal, productID, err)
	return v, err
}

func (s *Service) update(principal string, productID int, qty RawQuantity) (View, error) {
	target, err := qty.atLeast(0, MsgInvalidUpdateQty)
	if err != nil {
		return View{}, err
	}
	p, err := s.lookup(productID)
	if err != nil {
		return View{}, err
	}

	c := s.store.GetOrCreate(principal)
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.find(productID)
	current := 0
	if idx >= 0 {
		current = c.items[idx].Qty
	}

	switch {
	case target == current:
	case idx < 0:
		// Same path as Add, so both report identical failures.
		if err := s.reserveInto(c, p, target); err != nil {
			return View{}, err
		}
	case target == 0:
		if err := s.release(productID, current); err != nil {
			return View{}, err
		}
		c.removeAt(idx)
	case target > current:
		if err := s.reserve(productID, target-current); err != nil {
			return View{}, err
		}
		c.items[idx].Qty = target
	default:
		if err := s.release(productID, current-target); err != nil {
			return View{}, err
		}
		c.items[idx].Qty = target
	}

	return newView(c.snapshot()), nil
}

func (s *Service) Remove(principal string, productID int) (View, error) {
	v, err := s.remove(principal, productID)
	s.finish("remove", principal, productID, err)
	return v, err
}

func (s *Service) remove(principal string, productID int) (View, error) {
	if _, err := s.lookup(productID); err != nil {
		return View{}, err
	}

	c := s.store.GetOrCreate(principal)
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.find(productID)
	if idx < 0 {
		return View{}, notFound(MsgLineNotFound)
	}
	if err := s.release(productID, c.items[idx].Qty); err != nil {
		return View{}, err
	}
	c.removeAt(idx)

	return newView(c.snapshot()), nil
}

// Clear releases every line back to stock and empties the cart. It cannot fail.
func (s *Service) Clear(principal string) View {
	c := s.store.GetOrCreate(principal)
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if err := s.catalog.Release(it.ProductID, it.Qty); err != nil {
			s.log.Error("release on clear failed",
				zap.String("principal", principal),
				zap.Int("product_id", it.ProductID),
				zap.Int("qty", it.Qty),
				zap.Error(err),
			)
		}
	}
	c.items = nil

	s.metrics.observe("clear", nil)
	s.log.Info("cart cleared", zap.String("principal", principal))
	return View{Items: []Item{}, Total: Total(nil)}
}

// reserveInto takes n units of p and adds them to the cart line, creating the
// line with a price snapshot if needed. c.mu must be held.
func (s *Service) reserveInto(c *Cart, p catalog.Product, n int) error {
	if err := s.reserve(p.ID, n); err != nil {
		return err
	}
	if idx := c.find(p.ID); idx >= 0 {
		c.items[idx].Qty += n
		return nil
	}
	c.items = append(c.items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Qty:       n,
	})
	return nil
}

func (s *Service) lookup(productID int) (catalog.Product, error) {
	p, err := s.catalog.Lookup(productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Product{}, notFound(MsgProductNotFound)
	}
	if err != nil {
		return catalog.Product{}, internalError(err)
	}
	return p, nil
}

func (s *Service) reserve(productID, n int) error {
	err := s.catalog.Reserve(productID, n)
	if err == nil {
		return nil
	}

	var insufficient *catalog.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return insufficientStock(insufficient.Available)
	case errors.Is(err, catalog.ErrNotFound):
		return notFound(MsgProductNotFound)
	default:
		return internalError(err)
	}
}

func (s *Service) release(productID, n int) error {
	if err := s.catalog.Release(productID, n); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *Service) finish(op, principal string, productID int, err error) {
	s.metrics.observe(op, err)

	if err == nil {
		s.log.Info("cart "+op,
			zap.String("principal", principal),
			zap.Int("product_id", productID),
		)
		return
	}

	fields := []zap.Field{
		zap.String("principal", principal),
		zap.Int("product_id", productID),
		zap.Error(err),
	}
	if KindOf(err) == KindInternal {
		s.log.Error("cart "+op+" failed", fields...)
		return
	}
	s.log.Debug("cart "+op+" rejected", fields...)
}

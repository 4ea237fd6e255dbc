package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/TarielTopuria/EcommerceAngular/internal/domain"
	"github.com/TarielTopuria/EcommerceAngular/internal/pubsub"
	"github.com/TarielTopuria/EcommerceAngular/internal/storage"
)

// Store holds the shopping cart: at most one item per product id, quantity
// always at least 1. Every mutation normalizes, persists, then broadcasts.
type Store struct {
	storage storage.Store
	logger  *slog.Logger

	mu    sync.Mutex
	items *pubsub.Subject[domain.CartItems]
}

// NewStore creates a cart store, restoring persisted items. Corrupt or
// non-array stored JSON loads as an empty cart.
func NewStore(st storage.Store, logger *slog.Logger) *Store {
	items := domain.CartItems{}
	if raw, ok := st.Read(context.Background(), storage.KeyCartItems); ok {
		var loaded domain.CartItems
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			logger.Warn("stored cart is corrupt, starting empty",
				slog.String("error", err.Error()),
			)
		} else {
			items = loaded.Normalize()
		}
	}

	return &Store{
		storage: st,
		logger:  logger,
		items:   pubsub.NewSubject(items),
	}
}

// AddToCart inserts the product with quantity 1, or increments the quantity
// if it is already in the cart.
func (s *Store) AddToCart(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Value().Clone()
	if i := items.FindIndex(p.ID); i >= 0 {
		items[i].Quantity++
	} else {
		items = append(items, domain.CartItem{Product: p, Quantity: 1})
	}

	s.commit(items)
}

// RemoveFromCart drops the item for the given product id. No-op if absent.
func (s *Store) RemoveFromCart(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Value().Clone()
	i := items.FindIndex(productID)
	if i < 0 {
		return
	}
	items = append(items[:i], items[i+1:]...)

	s.commit(items)
}

// UpdateQuantity sets the quantity for the given product id. A quantity of
// zero or less removes the item. No-op if the id is absent.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items.Value().Clone()
	i := items.FindIndex(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		items = append(items[:i], items[i+1:]...)
	} else {
		items[i].Quantity = quantity
	}

	s.commit(items)
}

// Clear removes every item from the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(domain.CartItems{})
}

// IsInCart reports whether the product id is in the cart.
func (s *Store) IsInCart(productID int64) bool {
	return s.items.Value().FindIndex(productID) >= 0
}

// Items returns a defensive copy of the cart contents.
func (s *Store) Items() domain.CartItems {
	return s.items.Value().Clone()
}

// TotalPrice returns the price across all items.
func (s *Store) TotalPrice() float64 {
	return s.items.Value().TotalPrice()
}

// ItemCount returns the total number of units in the cart.
func (s *Store) ItemCount() int {
	return s.items.Value().ItemCount()
}

// Subscribe streams the cart contents, current value first.
func (s *Store) Subscribe(fn func(domain.CartItems)) (cancel func()) {
	return s.items.Subscribe(fn)
}

// commit normalizes, persists, and broadcasts the new cart state.
// Persistence failures are swallowed by the storage port.
func (s *Store) commit(items domain.CartItems) {
	items = items.Normalize()

	if data, err := json.Marshal(items); err != nil {
		s.logger.Error("marshal cart", slog.String("error", err.Error()))
	} else {
		s.storage.Write(context.Background(), storage.KeyCartItems, string(data))
	}

	s.items.Set(items)
}

package client

import (
	"fmt"

	"zipmyproject/internal/models"
)

// CartItem is one project in the cart with its quantity.
type CartItem struct {
	Project  models.Project `json:"project"`
	Quantity int            `json:"quantity"`
}

// CartStore persists cart contents between runs, the way the SPA kept them
// in local storage.
type CartStore interface {
	Load() ([]CartItem, error)
	Save(items []CartItem) error
}

// MemoryCartStore is an in-memory CartStore for tests.
type MemoryCartStore struct {
	items []CartItem
}

// Load returns the stored items.
func (s *MemoryCartStore) Load() ([]CartItem, error) {
	return s.items, nil
}

// Save stores the items.
func (s *MemoryCartStore) Save(items []CartItem) error {
	s.items = items
	return nil
}

// Cart is the shopping-cart state holder. Every mutation is written through
// to the store. Not safe for concurrent use; it models a single-threaded UI
// event loop.
type Cart struct {
	items []CartItem
	store CartStore
}

// NewCart creates a cart backed by the given store, restoring any persisted
// contents.
func NewCart(store CartStore) (*Cart, error) {
	items, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &Cart{
		items: items,
		store: store,
	}, nil
}

// AddItem puts a project in the cart, bumping the quantity if it is already
// there.
func (c *Cart) AddItem(project models.Project) error {
	for i := range c.items {
		if c.items[i].Project.ID == project.ID {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	c.items = append(c.items, CartItem{Project: project, Quantity: 1})
	return c.persist()
}

// RemoveItem drops a project from the cart entirely.
func (c *Cart) RemoveItem(projectID string) error {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.Project.ID != projectID {
			kept = append(kept, item)
		}
	}
	c.items = kept
	return c.persist()
}

// UpdateQuantity sets a project's quantity. A quantity of zero or less
// removes the item.
func (c *Cart) UpdateQuantity(projectID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(projectID)
	}
	for i := range c.items {
		if c.items[i].Project.ID == projectID {
			c.items[i].Quantity = quantity
			break
		}
	}
	return c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.items = nil
	return c.persist()
}

// TotalPrice returns the sum of price times quantity over all items.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Project.Price * float64(item.Quantity)
	}
	return total
}

// Count returns the total quantity across all items.
func (c *Cart) Count() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) persist() error {
	if err := c.store.Save(c.items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

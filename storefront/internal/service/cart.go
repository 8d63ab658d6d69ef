package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"food-storefront/storefront/internal/domain"
)

const CartStateVersion = 1

var ErrRestaurantMismatch = errors.New("cart already holds items from another restaurant")

// CartPolicy decides what AddToCart does when the item belongs to a restaurant
// other than the one the non-empty cart is scoped to.
type CartPolicy string

const (
	// PolicyOverwrite rescopes the cart and keeps existing items.
	PolicyOverwrite CartPolicy = "overwrite"
	// PolicyClear drops existing items before adding.
	PolicyClear CartPolicy = "clear"
	// PolicyReject refuses the add.
	PolicyReject CartPolicy = "reject"
)

func ParseCartPolicy(s string) (CartPolicy, error) {
	switch p := CartPolicy(s); p {
	case PolicyOverwrite, PolicyClear, PolicyReject:
		return p, nil
	}
	return "", fmt.Errorf("unknown cart policy %q", s)
}

type CartStore struct {
	mu        sync.RWMutex
	cart      domain.Cart
	policy    CartPolicy
	persister *Persister
}

func NewCartStore(policy CartPolicy, persister *Persister) *CartStore {
	return &CartStore{policy: policy, persister: persister}
}

// Restore replaces in-memory state with the persisted cart, if any.
func (s *CartStore) Restore(ctx context.Context) error {
	var cart domain.Cart
	ok, err := s.persister.Load(ctx, &cart)
	if err != nil || !ok {
		return err
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	log.Printf("Restored cart with %d items", len(cart.Items))
	return nil
}

// Subscribe clears the cart once a checkout session has been created.
func (s *CartStore) Subscribe(bus *Bus) {
	bus.Subscribe(domain.EventCheckoutStarted, func(ctx context.Context, event domain.Event) {
		s.ClearCart()
	})
}

func (s *CartStore) AddToCart(menu domain.Menu, restaurant domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.switchesRestaurant(restaurant) {
		switch s.policy {
		case PolicyReject:
			return ErrRestaurantMismatch
		case PolicyClear:
			s.cart.Items = nil
		}
	}

	found := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == menu.ID {
			s.cart.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.cart.Items = append(s.cart.Items, domain.CartItem{Menu: menu, Quantity: 1})
	}
	scoped := restaurant
	s.cart.Restaurant = &scoped

	s.persistLocked()
	return nil
}

func (s *CartStore) switchesRestaurant(restaurant domain.Restaurant) bool {
	return len(s.cart.Items) > 0 && s.cart.Restaurant != nil && s.cart.Restaurant.ID != restaurant.ID
}

func (s *CartStore) IncrementQuantity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == id {
			s.cart.Items[i].Quantity++
			s.persistLocked()
			return
		}
	}
}

// DecrementQuantity never drops a quantity below one.
func (s *CartStore) DecrementQuantity(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == id {
			if s.cart.Items[i].Quantity > 1 {
				s.cart.Items[i].Quantity--
				s.persistLocked()
			}
			return
		}
	}
}

// RemoveFromCart keeps the scoping restaurant even when the cart empties.
func (s *CartStore) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == id {
			s.cart.Items = append(s.cart.Items[:i:i], s.cart.Items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

func (s *CartStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = domain.Cart{}
	s.persistLocked()
}

func (s *CartStore) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.Cart{Items: make([]domain.CartItem, len(s.cart.Items))}
	copy(out.Items, s.cart.Items)
	if s.cart.Restaurant != nil {
		r := *s.cart.Restaurant
		out.Restaurant = &r
	}
	return out
}

func (s *CartStore) Total() float64 {
	return s.Snapshot().Total()
}

func (s *CartStore) Policy() CartPolicy {
	return s.policy
}

func (s *CartStore) persistLocked() {
	s.persister.persist(s.cart)
}

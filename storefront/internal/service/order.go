package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"food-storefront/storefront/internal/domain"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoRestaurant    = errors.New("cart is not scoped to a restaurant")
	ErrOrderIDRequired = errors.New("order id is required")
)

type OrderStore struct {
	api       OrderAPI
	cart      *CartStore
	publisher Publisher
	notifier  Notifier
	qr        QRGenerator

	mu      sync.RWMutex
	loading bool
	orders  []domain.Order
}

func NewOrderStore(api OrderAPI, cart *CartStore, publisher Publisher, notifier Notifier, qr QRGenerator) *OrderStore {
	return &OrderStore{
		api:       api,
		cart:      cart,
		publisher: publisher,
		notifier:  notifier,
		qr:        qr,
	}
}

// DeliveryDetailsFromUser prefills the checkout form from the signed-in profile.
func DeliveryDetailsFromUser(user *domain.User) domain.DeliveryDetails {
	if user == nil {
		return domain.DeliveryDetails{}
	}
	return domain.DeliveryDetails{
		Name:    user.Fullname,
		Email:   user.Email,
		Contact: string(user.Contact),
		Address: user.Address,
		City:    user.City,
		Country: user.Country,
	}
}

// BuildCheckoutRequest snapshots the cart; it never touches the network.
func (s *OrderStore) BuildCheckoutRequest(details domain.DeliveryDetails) (domain.CheckoutRequest, error) {
	cart := s.cart.Snapshot()
	if cart.IsEmpty() {
		return domain.CheckoutRequest{}, ErrEmptyCart
	}
	if cart.Restaurant == nil || cart.Restaurant.ID == "" {
		return domain.CheckoutRequest{}, ErrNoRestaurant
	}
	if err := validateInput(details); err != nil {
		return domain.CheckoutRequest{}, err
	}

	items := make([]domain.CheckoutItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, domain.CheckoutItem{
			MenuID:   item.ID,
			Name:     item.Name,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return domain.CheckoutRequest{
		CartItems:       items,
		DeliveryDetails: details,
		RestaurantID:    cart.Restaurant.ID,
	}, nil
}

// CreateCheckoutSession submits the request and returns the payment redirect URL.
// On failure the cart is left untouched so the user can retry.
func (s *OrderStore) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	if len(req.CartItems) == 0 {
		return "", ErrEmptyCart
	}
	s.setLoading(true)
	defer s.setLoading(false)

	url, err := s.api.CreateCheckoutSession(ctx, req)
	if err != nil {
		notifyFailure(s.notifier, err)
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, domain.Event{
			Type:         domain.EventCheckoutStarted,
			RestaurantID: req.RestaurantID,
		})
		if err != nil {
			log.Printf("ERROR: publish checkout for restaurant %s: %v", req.RestaurantID, err)
		}
	}
	return url, nil
}

// Checkout builds and submits in one step.
func (s *OrderStore) Checkout(ctx context.Context, details domain.DeliveryDetails) (string, error) {
	req, err := s.BuildCheckoutRequest(details)
	if err != nil {
		notifyFailure(s.notifier, err)
		return "", err
	}
	return s.CreateCheckoutSession(ctx, req)
}

// GetOrderDetails refreshes the user's orders. An empty list is not an error.
func (s *OrderStore) GetOrderDetails(ctx context.Context) ([]domain.Order, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	orders, err := s.api.GetOrders(ctx)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, fmt.Errorf("get orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return copyOrders(orders), nil
}

func (s *OrderStore) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOrders(s.orders)
}

func (s *OrderStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ConfirmationQR encodes a link to the order confirmation page.
func (s *OrderStore) ConfirmationQR(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, ErrOrderIDRequired
	}
	if s.qr == nil {
		return nil, errors.New("qr generator not configured")
	}
	png, err := s.qr.Generate(orderID)
	if err != nil {
		log.Printf("ERROR: generate qr for order %s: %v", orderID, err)
		return nil, err
	}
	return png, nil
}

func (s *OrderStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func copyOrders(in []domain.Order) []domain.Order {
	if in == nil {
		return []domain.Order{}
	}
	out := make([]domain.Order, len(in))
	copy(out, in)
	return out
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"
)

var (
	ErrStaleResponse = errors.New("search superseded by a newer request")
	ErrInvalidStatus = errors.New("invalid order status")
)

// RestaurantStore owns the catalog view: the admin's restaurant and its menus,
// the restaurant being browsed, search results, cuisine filters and the
// admin's incoming orders.
type RestaurantStore struct {
	api       RestaurantAPI
	notifier  Notifier
	publisher Publisher

	mu         sync.RWMutex
	loading    bool
	restaurant *domain.Restaurant
	single     *domain.Restaurant
	searched   *domain.SearchResult
	applied    []string
	orders     []domain.Order

	searchSeq    uint64
	cancelSearch context.CancelFunc
}

func NewRestaurantStore(api RestaurantAPI, notifier Notifier, publisher Publisher) *RestaurantStore {
	return &RestaurantStore{api: api, notifier: notifier, publisher: publisher}
}

func (s *RestaurantStore) Subscribe(bus *Bus) {
	bus.Subscribe(domain.EventMenuCreated, func(ctx context.Context, event domain.Event) {
		if event.Menu != nil && s.owns(bus, event) {
			s.AddMenuToRestaurant(*event.Menu)
		}
	})
	bus.Subscribe(domain.EventMenuUpdated, func(ctx context.Context, event domain.Event) {
		if event.Menu != nil && s.owns(bus, event) {
			s.UpdateMenuToRestaurant(*event.Menu)
		}
	})
	bus.Subscribe(domain.EventOrderStatusUpdated, func(ctx context.Context, event domain.Event) {
		s.applyOrderStatus(event.OrderID, event.Status)
	})
}

// owns reports whether a menu event targets the cached restaurant. An event
// without a restaurant id is only trusted when this instance raised it.
func (s *RestaurantStore) owns(bus *Bus, event domain.Event) bool {
	if event.RestaurantID == "" {
		return event.Source == bus.Source()
	}
	return s.RestaurantID() == event.RestaurantID
}

func (s *RestaurantStore) CreateRestaurant(ctx context.Context, in domain.RestaurantInput) (*domain.Restaurant, error) {
	return s.saveRestaurant(ctx, in, s.api.CreateRestaurant)
}

func (s *RestaurantStore) UpdateRestaurant(ctx context.Context, in domain.RestaurantInput) (*domain.Restaurant, error) {
	return s.saveRestaurant(ctx, in, s.api.UpdateRestaurant)
}

type saveRestaurantFunc func(context.Context, domain.RestaurantInput) (*domain.Restaurant, string, error)

func (s *RestaurantStore) saveRestaurant(ctx context.Context, in domain.RestaurantInput, save saveRestaurantFunc) (*domain.Restaurant, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	s.setLoading(true)
	defer s.setLoading(false)

	rest, msg, err := save(ctx, in)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.notifier.Success(msg)

	s.mu.Lock()
	s.restaurant = cloneRestaurant(rest)
	s.mu.Unlock()
	return cloneRestaurant(rest), nil
}

// GetRestaurant loads the admin's own restaurant. A 404 means none exists yet.
func (s *RestaurantStore) GetRestaurant(ctx context.Context) (*domain.Restaurant, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	rest, err := s.api.GetRestaurant(ctx)
	if backend.HasStatus(err, http.StatusNotFound) {
		s.mu.Lock()
		s.restaurant = nil
		s.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}

	s.mu.Lock()
	s.restaurant = cloneRestaurant(rest)
	s.mu.Unlock()
	return cloneRestaurant(rest), nil
}

func (s *RestaurantStore) GetSingleRestaurant(ctx context.Context, id string) (*domain.Restaurant, error) {
	rest, err := s.api.GetRestaurantByID(ctx, id)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.mu.Lock()
	s.single = cloneRestaurant(rest)
	s.mu.Unlock()
	return cloneRestaurant(rest), nil
}

// SearchRestaurant keeps only the newest request's response. Starting a search
// cancels the one in flight; a superseded call returns ErrStaleResponse and
// leaves the stored results alone.
func (s *RestaurantStore) SearchRestaurant(ctx context.Context, text, query string, cuisines []string) (*domain.SearchResult, error) {
	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	if s.cancelSearch != nil {
		s.cancelSearch()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancelSearch = cancel
	s.loading = true
	s.mu.Unlock()
	defer cancel()

	result, err := s.api.SearchRestaurants(ctx, text, query, cuisines)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.searchSeq {
		return nil, ErrStaleResponse
	}
	s.loading = false
	s.cancelSearch = nil
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.searched = cloneSearch(result)
	return cloneSearch(result), nil
}

func (s *RestaurantStore) SearchResults() *domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSearch(s.searched)
}

// SetAppliedFilter toggles a cuisine tag in or out of the filter set.
func (s *RestaurantStore) SetAppliedFilter(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.applied {
		if existing == tag {
			s.applied = append(s.applied[:i:i], s.applied[i+1:]...)
			return
		}
	}
	s.applied = append(s.applied, tag)
}

func (s *RestaurantStore) ResetAppliedFilter() {
	s.mu.Lock()
	s.applied = nil
	s.mu.Unlock()
}

func (s *RestaurantStore) AppliedFilters() []string {
	s.mu.RLock()
	out := append([]string{}, s.applied...)
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}

// FilterByCuisine keeps restaurants serving any applied cuisine; with no
// filters applied every restaurant is kept.
func (s *RestaurantStore) FilterByCuisine(restaurants []domain.Restaurant) []domain.Restaurant {
	filters := s.AppliedFilters()
	if len(filters) == 0 {
		return append([]domain.Restaurant{}, restaurants...)
	}
	out := []domain.Restaurant{}
	for _, r := range restaurants {
		for _, tag := range filters {
			if r.HasCuisine(tag) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// AddMenuToRestaurant patches the cached restaurant after a menu is created.
// A menu already present by id is replaced instead of duplicated.
func (s *RestaurantStore) AddMenuToRestaurant(menu domain.Menu) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restaurant == nil {
		return false
	}
	for i := range s.restaurant.Menus {
		if s.restaurant.Menus[i].ID == menu.ID {
			s.restaurant.Menus[i] = menu
			return true
		}
	}
	s.restaurant.Menus = append(s.restaurant.Menus, menu)
	return true
}

// UpdateMenuToRestaurant replaces the cached menu with the same id. It reports
// false and leaves the list unchanged when no such menu is cached.
func (s *RestaurantStore) UpdateMenuToRestaurant(menu domain.Menu) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restaurant == nil {
		return false
	}
	for i := range s.restaurant.Menus {
		if s.restaurant.Menus[i].ID == menu.ID {
			s.restaurant.Menus[i] = menu
			return true
		}
	}
	log.Printf("WARN: menu %s not cached for restaurant %s, update ignored", menu.ID, s.restaurant.ID)
	return false
}

func (s *RestaurantStore) GetRestaurantOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.api.GetRestaurantOrders(ctx)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.mu.Lock()
	s.orders = copyOrders(orders)
	s.mu.Unlock()
	return copyOrders(orders), nil
}

// UpdateRestaurantOrder changes the local order only to the status the backend
// confirms.
func (s *RestaurantStore) UpdateRestaurantOrder(ctx context.Context, orderID string, status domain.OrderStatus) (domain.OrderStatus, error) {
	if orderID == "" {
		return "", ErrOrderIDRequired
	}
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	confirmed, msg, err := s.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		notifyFailure(s.notifier, err)
		return "", err
	}
	if confirmed == "" {
		return "", nil
	}
	s.applyOrderStatus(orderID, confirmed)
	s.notifier.Success(msg)

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, domain.Event{
			Type:         domain.EventOrderStatusUpdated,
			RestaurantID: s.RestaurantID(),
			OrderID:      orderID,
			Status:       confirmed,
		})
		if err != nil {
			log.Printf("ERROR: publish status of order %s: %v", orderID, err)
		}
	}
	return confirmed, nil
}

func (s *RestaurantStore) applyOrderStatus(orderID string, status domain.OrderStatus) {
	if status == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			return
		}
	}
}

func (s *RestaurantStore) Restaurant() *domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRestaurant(s.restaurant)
}

func (s *RestaurantStore) RestaurantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.restaurant == nil {
		return ""
	}
	return s.restaurant.ID
}

func (s *RestaurantStore) SingleRestaurant() *domain.Restaurant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRestaurant(s.single)
}

func (s *RestaurantStore) RestaurantOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOrders(s.orders)
}

func (s *RestaurantStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *RestaurantStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func cloneRestaurant(r *domain.Restaurant) *domain.Restaurant {
	if r == nil {
		return nil
	}
	out := *r
	out.Cuisines = append([]string(nil), r.Cuisines...)
	out.Menus = append([]domain.Menu(nil), r.Menus...)
	return &out
}

func cloneSearch(r *domain.SearchResult) *domain.SearchResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Data = make([]domain.Restaurant, len(r.Data))
	for i := range r.Data {
		out.Data[i] = *cloneRestaurant(&r.Data[i])
	}
	return &out
}

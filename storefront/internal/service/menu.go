package service

import (
	"context"
	"log"
	"sync"

	"food-storefront/storefront/internal/domain"
)

const MenuStateVersion = 1

type menuState struct {
	Menu *domain.Menu `json:"menu"`
}

// MenuStore creates and edits menus for the admin's restaurant. The catalog
// hears about every change through menu events on the bus.
type MenuStore struct {
	api       MenuAPI
	publisher Publisher
	notifier  Notifier
	persister *Persister
	owner     func() string

	mu      sync.RWMutex
	loading bool
	menu    *domain.Menu
}

// NewMenuStore takes owner to stamp events with the admin's restaurant id; it may be nil.
func NewMenuStore(api MenuAPI, publisher Publisher, notifier Notifier, persister *Persister, owner func() string) *MenuStore {
	return &MenuStore{
		api:       api,
		publisher: publisher,
		notifier:  notifier,
		persister: persister,
		owner:     owner,
	}
}

func (s *MenuStore) Restore(ctx context.Context) error {
	var state menuState
	ok, err := s.persister.Load(ctx, &state)
	if err != nil || !ok {
		return err
	}
	s.mu.Lock()
	s.menu = state.Menu
	s.mu.Unlock()
	return nil
}

func (s *MenuStore) CreateMenu(ctx context.Context, in domain.MenuInput) (*domain.Menu, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	s.setLoading(true)
	defer s.setLoading(false)

	menu, msg, err := s.api.CreateMenu(ctx, in)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.notifier.Success(msg)
	s.remember(ctx, domain.EventMenuCreated, menu)
	return copyMenu(menu), nil
}

func (s *MenuStore) EditMenu(ctx context.Context, menuID string, in domain.MenuInput) (*domain.Menu, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	s.setLoading(true)
	defer s.setLoading(false)

	menu, msg, err := s.api.EditMenu(ctx, menuID, in)
	if err != nil {
		notifyFailure(s.notifier, err)
		return nil, err
	}
	s.notifier.Success(msg)
	s.remember(ctx, domain.EventMenuUpdated, menu)
	return copyMenu(menu), nil
}

func (s *MenuStore) remember(ctx context.Context, eventType domain.EventType, menu *domain.Menu) {
	if menu == nil {
		return
	}
	s.mu.Lock()
	s.menu = copyMenu(menu)
	s.persister.persist(menuState{Menu: s.menu})
	s.mu.Unlock()

	if s.publisher == nil {
		return
	}
	event := domain.Event{Type: eventType, Menu: copyMenu(menu)}
	if s.owner != nil {
		event.RestaurantID = s.owner()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("ERROR: publish %s for menu %s: %v", eventType, menu.ID, err)
	}
}

func (s *MenuStore) Menu() *domain.Menu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMenu(s.menu)
}

func (s *MenuStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *MenuStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func copyMenu(m *domain.Menu) *domain.Menu {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

package service

import (
	"context"
	"errors"
	"sync"

	"food-storefront/storefront/internal/domain"
)

const ThemeStateVersion = 1

var ErrInvalidTheme = errors.New("theme must be light or dark")

type themeState struct {
	Theme domain.Theme `json:"theme"`
}

type ThemeStore struct {
	persister *Persister

	mu    sync.RWMutex
	theme domain.Theme
}

func NewThemeStore(persister *Persister) *ThemeStore {
	return &ThemeStore{persister: persister, theme: domain.ThemeLight}
}

func (s *ThemeStore) Restore(ctx context.Context) error {
	var state themeState
	ok, err := s.persister.Load(ctx, &state)
	if err != nil || !ok {
		return err
	}
	if state.Theme != domain.ThemeLight && state.Theme != domain.ThemeDark {
		return nil
	}
	s.mu.Lock()
	s.theme = state.Theme
	s.mu.Unlock()
	return nil
}

func (s *ThemeStore) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *ThemeStore) SetTheme(theme domain.Theme) error {
	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		return ErrInvalidTheme
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.persister.persist(themeState{Theme: theme})
	return nil
}

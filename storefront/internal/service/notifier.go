package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"food-storefront/storefront/internal/backend"
)

const (
	msgSomethingWrong = "Something went wrong"
	msgUnexpected     = "Unexpected error occurred"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives the transient user-facing messages stores emit.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Printf("NOTICE: %s", message)
}

func (LogNotifier) Error(message string) {
	log.Printf("WARN: %s", message)
}

// Inbox buffers notifications until the UI drains them.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
	limit int
	next  Notifier
}

func NewInbox(limit int, next Notifier) *Inbox {
	return &Inbox{limit: limit, next: next}
}

func (i *Inbox) Success(message string) {
	i.push(LevelSuccess, message)
}

func (i *Inbox) Error(message string) {
	i.push(LevelError, message)
}

func (i *Inbox) push(level Level, message string) {
	if message == "" {
		return
	}
	i.mu.Lock()
	i.items = append(i.items, Notification{Level: level, Message: message, At: time.Now()})
	if i.limit > 0 && len(i.items) > i.limit {
		i.items = i.items[len(i.items)-i.limit:]
	}
	i.mu.Unlock()

	if i.next == nil {
		return
	}
	if level == LevelError {
		i.next.Error(message)
	} else {
		i.next.Success(message)
	}
}

func (i *Inbox) Drain() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	items := i.items
	i.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

// userFacing errors are shown to the user as-is.
var userFacing = []error{
	ErrEmptyCart,
	ErrNoRestaurant,
	ErrRestaurantMismatch,
	ErrOrderIDRequired,
	ErrInvalidStatus,
	ErrInvalidTheme,
}

// UserMessage picks the text shown for a failed store action.
func UserMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return msgSomethingWrong
	}
	var transportErr *backend.TransportError
	if errors.As(err, &transportErr) {
		return msgSomethingWrong
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	for _, target := range userFacing {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return msgUnexpected
}

func notifyFailure(n Notifier, err error) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrStaleResponse) {
		return
	}
	n.Error(UserMessage(err))
}

package domain

import "time"

type EventType string

const (
	EventMenuCreated        EventType = "menu_created"
	EventMenuUpdated        EventType = "menu_updated"
	EventOrderStatusUpdated EventType = "order_status_updated"
	EventCheckoutStarted    EventType = "checkout_started"
)

// Shared events describe catalog state that every storefront instance mirrors.
// Cart and checkout events belong to a single client and never leave it.
func (t EventType) Shared() bool {
	switch t {
	case EventMenuCreated, EventMenuUpdated, EventOrderStatusUpdated:
		return true
	}
	return false
}

type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	Source       string      `json:"source"`
	RestaurantID string      `json:"restaurant_id,omitempty"`
	OrderID      string      `json:"order_id,omitempty"`
	Status       OrderStatus `json:"status,omitempty"`
	Menu         *Menu       `json:"menu,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type Menu struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

type Restaurant struct {
	ID             string   `json:"_id"`
	RestaurantName string   `json:"restaurantName"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	DeliveryTime   int      `json:"deliveryTime"`
	Cuisines       []string `json:"cuisines"`
	ImageURL       string   `json:"imageUrl"`
	Menus          []Menu   `json:"menus"`
}

// HasCuisine reports whether the restaurant serves the tag, case-insensitively.
func (r Restaurant) HasCuisine(tag string) bool {
	for _, c := range r.Cuisines {
		if strings.EqualFold(c, tag) {
			return true
		}
	}
	return false
}

type CartItem struct {
	Menu
	Quantity int `json:"quantity"`
}

type Cart struct {
	Items      []CartItem  `json:"cart"`
	Restaurant *Restaurant `json:"restaurant"`
}

// Total is the sum of price times quantity over all items.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type CheckoutItem struct {
	MenuID   string  `json:"menuId"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type DeliveryDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Contact string `json:"contact" validate:"required,min=10"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type CheckoutRequest struct {
	CartItems       []CheckoutItem  `json:"cartItems"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	RestaurantID    string          `json:"restaurantId"`
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "outfordelivery"
	StatusDelivered      OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID              string          `json:"_id"`
	User            string          `json:"user,omitempty"`
	Restaurant      string          `json:"restaurant,omitempty"`
	CartItems       []CheckoutItem  `json:"cartItems"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          OrderStatus     `json:"status"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
}

type User struct {
	ID             string  `json:"_id"`
	Fullname       string  `json:"fullname"`
	Email          string  `json:"email"`
	Contact        Contact `json:"contact"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
	Admin          bool    `json:"admin"`
	IsVerified     bool    `json:"isVerified"`
}

// Contact is a phone number the backend may send as a JSON string or number.
type Contact string

func (c *Contact) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Contact(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Contact(n.String())
	return nil
}

type SignupInput struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Contact  string `json:"contact" validate:"required,min=10"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateProfileInput struct {
	Fullname       string `json:"fullname,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	Country        string `json:"country,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// ImageFile is an upload forwarded to the backend as a multipart part.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type MenuInput struct {
	Name        string     `validate:"required"`
	Description string     `validate:"required"`
	Price       float64    `validate:"gte=0"`
	Image       *ImageFile `validate:"-"`
}

type RestaurantInput struct {
	RestaurantName string     `validate:"required"`
	City           string     `validate:"required"`
	Country        string     `validate:"required"`
	DeliveryTime   int        `validate:"gte=1"`
	Cuisines       []string   `validate:"dive,required"`
	Image          *ImageFile `validate:"-"`
}

type SearchResult struct {
	Data    []Restaurant `json:"data"`
	Message string       `json:"message,omitempty"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

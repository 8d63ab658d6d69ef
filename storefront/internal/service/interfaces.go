package service

import (
	"context"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"
	"food-storefront/storefront/internal/storage"
)

type StateStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type AuthAPI interface {
	Signup(ctx context.Context, in domain.SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, in domain.LoginInput) (*domain.User, string, error)
	VerifyEmail(ctx context.Context, code string) (*domain.User, string, error)
	CheckAuth(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	UpdateProfile(ctx context.Context, in domain.UpdateProfileInput) (*domain.User, string, error)
}

type RestaurantAPI interface {
	CreateRestaurant(ctx context.Context, in domain.RestaurantInput) (*domain.Restaurant, string, error)
	UpdateRestaurant(ctx context.Context, in domain.RestaurantInput) (*domain.Restaurant, string, error)
	GetRestaurant(ctx context.Context) (*domain.Restaurant, error)
	GetRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error)
	SearchRestaurants(ctx context.Context, text, query string, cuisines []string) (*domain.SearchResult, error)
	GetRestaurantOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.OrderStatus, string, error)
}

type MenuAPI interface {
	CreateMenu(ctx context.Context, in domain.MenuInput) (*domain.Menu, string, error)
	EditMenu(ctx context.Context, menuID string, in domain.MenuInput) (*domain.Menu, string, error)
}

type OrderAPI interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error)
	GetOrders(ctx context.Context) ([]domain.Order, error)
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

var (
	_ AuthAPI       = (*backend.Client)(nil)
	_ RestaurantAPI = (*backend.Client)(nil)
	_ MenuAPI       = (*backend.Client)(nil)
	_ OrderAPI      = (*backend.Client)(nil)

	_ StateStore = (*storage.MemoryStore)(nil)
	_ StateStore = (*storage.RedisStore)(nil)
	_ StateStore = (*storage.PostgresStore)(nil)

	_ Publisher = (*storage.KafkaPublisher)(nil)
	_ Publisher = (*Bus)(nil)
)

package service_test

import (
	"context"
	"errors"
	"testing"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"
	"food-storefront/storefront/internal/mocks"
	"food-storefront/storefront/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var validDetails = domain.DeliveryDetails{
	Name:    "Asha",
	Email:   "asha@example.com",
	Contact: "9876543210",
	Address: "12 MG Road",
	City:    "Pune",
	Country: "India",
}

type orderFixture struct {
	api   *mocks.OrderAPI
	qr    *mocks.QRGenerator
	cart  *service.CartStore
	inbox *service.Inbox
	store *service.OrderStore
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		api:   mocks.NewOrderAPI(t),
		qr:    mocks.NewQRGenerator(t),
		inbox: service.NewInbox(10, nil),
	}
	f.cart, _ = newCartStore(t, service.PolicyClear)
	bus := service.NewBus("client-1", nil)
	f.cart.Subscribe(bus)
	f.store = service.NewOrderStore(f.api, f.cart, bus, f.inbox, f.qr)
	return f
}

func TestOrderStore_BuildCheckoutRequest(t *testing.T) {
	tests := []struct {
		name          string
		prepareCart   func(cart *service.CartStore)
		details       domain.DeliveryDetails
		expectedError error
	}{
		{
			name:          "empty_cart",
			prepareCart:   func(cart *service.CartStore) {},
			details:       validDetails,
			expectedError: service.ErrEmptyCart,
		},
		{
			name: "emptied_cart_keeps_scope_but_is_rejected",
			prepareCart: func(cart *service.CartStore) {
				_ = cart.AddToCart(burger, burgerHub)
				cart.RemoveFromCart(burger.ID)
			},
			details:       validDetails,
			expectedError: service.ErrEmptyCart,
		},
		{
			name: "ok",
			prepareCart: func(cart *service.CartStore) {
				_ = cart.AddToCart(burger, burgerHub)
				_ = cart.AddToCart(burger, burgerHub)
				_ = cart.AddToCart(fries, burgerHub)
			},
			details: validDetails,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t)
			testCase.prepareCart(f.cart)

			req, err := f.store.BuildCheckoutRequest(testCase.details)
			assert.ErrorIs(t, err, testCase.expectedError)
			if testCase.expectedError != nil {
				return
			}
			assert.Equal(t, "r1", req.RestaurantID)
			require.Len(t, req.CartItems, 2)
			assert.Equal(t, domain.CheckoutItem{MenuID: "m1", Name: "Burger", Price: 100, Quantity: 2}, req.CartItems[0])
			assert.Equal(t, validDetails, req.DeliveryDetails)
		})
	}
}

func TestOrderStore_BuildCheckoutRequestValidatesDetails(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.cart.AddToCart(burger, burgerHub))

	details := validDetails
	details.Email = "not-an-email"
	details.Contact = "123"

	_, err := f.store.BuildCheckoutRequest(details)

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
	assert.Contains(t, validationErr.Fields, "contact")
}

func TestOrderStore_CheckoutEmptyCartMakesNoCall(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.store.Checkout(context.Background(), validDetails)

	assert.ErrorIs(t, err, service.ErrEmptyCart)
	f.api.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	notes := f.inbox.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, service.LevelError, notes[0].Level)
}

func TestOrderStore_Checkout(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		prepareMocks  func(api *mocks.OrderAPI)
		expectedURL   string
		expectedError bool
		cartCleared   bool
		message       string
	}{
		{
			name: "success_clears_cart",
			prepareMocks: func(api *mocks.OrderAPI) {
				api.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(req domain.CheckoutRequest) bool {
					return req.RestaurantID == "r1" && len(req.CartItems) == 1
				})).Return("https://pay.example/s/1", nil).Once()
			},
			expectedURL: "https://pay.example/s/1",
			cartCleared: true,
		},
		{
			name: "backend_error_keeps_cart",
			prepareMocks: func(api *mocks.OrderAPI) {
				api.On("CreateCheckoutSession", mock.Anything, mock.Anything).
					Return("", &backend.APIError{Status: 400, Message: "Restaurant not found"}).Once()
			},
			expectedError: true,
			message:       "Restaurant not found",
		},
		{
			name: "missing_redirect_keeps_cart",
			prepareMocks: func(api *mocks.OrderAPI) {
				api.On("CreateCheckoutSession", mock.Anything, mock.Anything).
					Return("", backend.ErrMissingRedirect).Once()
			},
			expectedError: true,
			message:       "Unexpected error occurred",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newOrderFixture(t)
			require.NoError(t, f.cart.AddToCart(burger, burgerHub))
			testCase.prepareMocks(f.api)

			url, err := f.store.Checkout(ctx, validDetails)

			assert.Equal(t, testCase.expectedURL, url)
			assert.Equal(t, testCase.expectedError, err != nil)
			assert.Equal(t, testCase.cartCleared, f.cart.Snapshot().IsEmpty())
			assert.False(t, f.store.Loading())
			if testCase.message != "" {
				notes := f.inbox.Drain()
				require.Len(t, notes, 1)
				assert.Equal(t, testCase.message, notes[0].Message)
			}
		})
	}
}

func TestOrderStore_GetOrderDetails(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	f.api.On("GetOrders", mock.Anything).Return(nil, nil).Once()
	orders, err := f.store.GetOrderDetails(ctx)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	f.api.On("GetOrders", mock.Anything).Return([]domain.Order{{ID: "o1", Status: domain.StatusPending}}, nil).Once()
	orders, err = f.store.GetOrderDetails(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", f.store.Orders()[0].ID)

	f.api.On("GetOrders", mock.Anything).Return(nil, &backend.TransportError{Op: "GET /order", Err: errors.New("refused")}).Once()
	_, err = f.store.GetOrderDetails(ctx)
	assert.Error(t, err)
	assert.Len(t, f.store.Orders(), 1)
	assert.Equal(t, "Something went wrong", f.inbox.Drain()[0].Message)
}

func TestOrderStore_ConfirmationQR(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.store.ConfirmationQR("")
	assert.ErrorIs(t, err, service.ErrOrderIDRequired)

	f.qr.On("Generate", "o1").Return([]byte("png"), nil).Once()
	png, err := f.store.ConfirmationQR("o1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestDeliveryDetailsFromUser(t *testing.T) {
	assert.Equal(t, domain.DeliveryDetails{}, service.DeliveryDetailsFromUser(nil))

	user := &domain.User{Fullname: "Asha", Email: "asha@example.com", Contact: "9876543210", Address: "12 MG Road", City: "Pune", Country: "India"}
	assert.Equal(t, validDetails, service.DeliveryDetailsFromUser(user))
}

package service_test

import (
	"context"
	"testing"

	"food-storefront/storefront/internal/domain"
	"food-storefront/storefront/internal/service"
	"food-storefront/storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	burger    = domain.Menu{ID: "m1", Name: "Burger", Description: "Cheese", Price: 100}
	fries     = domain.Menu{ID: "m2", Name: "Fries", Description: "Salted", Price: 40}
	thali     = domain.Menu{ID: "m3", Name: "Thali", Description: "Veg", Price: 250}
	burgerHub = domain.Restaurant{ID: "r1", RestaurantName: "Burger Hub", Cuisines: []string{"burger"}}
	thaliHut  = domain.Restaurant{ID: "r2", RestaurantName: "Thali Hut", Cuisines: []string{"thali"}}
)

func newCartStore(t *testing.T, policy service.CartPolicy) (*service.CartStore, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	persister := service.NewPersister(store, "client-1", "cart", service.CartStateVersion)
	return service.NewCartStore(policy, persister), store
}

func TestCartStore_AddToCartCountsRepeatedAdds(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyClear)

	for i := 0; i < 3; i++ {
		require.NoError(t, cart.AddToCart(burger, burgerHub))
	}
	require.NoError(t, cart.AddToCart(fries, burgerHub))

	snap := cart.Snapshot()
	require.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.Equal(t, 1, snap.Items[1].Quantity)
	assert.Equal(t, "r1", snap.Restaurant.ID)
	assert.Equal(t, 340.0, cart.Total())
}

func TestCartStore_QuantityScenario(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyClear)

	require.NoError(t, cart.AddToCart(burger, burgerHub))
	cart.IncrementQuantity("m1")
	assert.Equal(t, 200.0, cart.Total())

	cart.DecrementQuantity("m1")
	assert.Equal(t, 100.0, cart.Total())

	cart.DecrementQuantity("m1")
	assert.Equal(t, 100.0, cart.Total())
	assert.Equal(t, 1, cart.Snapshot().Items[0].Quantity)

	cart.IncrementQuantity("missing")
	cart.DecrementQuantity("missing")
	assert.Equal(t, 100.0, cart.Total())
}

func TestCartStore_RemoveKeepsRestaurant(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyClear)
	require.NoError(t, cart.AddToCart(burger, burgerHub))

	cart.RemoveFromCart("m1")

	snap := cart.Snapshot()
	assert.True(t, snap.IsEmpty())
	require.NotNil(t, snap.Restaurant)
	assert.Equal(t, "r1", snap.Restaurant.ID)
}

func TestCartStore_ClearCart(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyClear)
	require.NoError(t, cart.AddToCart(burger, burgerHub))
	require.NoError(t, cart.AddToCart(fries, burgerHub))

	cart.ClearCart()

	snap := cart.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Nil(t, snap.Restaurant)
	assert.Zero(t, cart.Total())
}

func TestCartStore_CrossRestaurantPolicy(t *testing.T) {
	tests := []struct {
		name           string
		policy         service.CartPolicy
		expectedErr    error
		expectedItems  []string
		expectedScoped string
	}{
		{
			name:           "overwrite_keeps_items",
			policy:         service.PolicyOverwrite,
			expectedItems:  []string{"m1", "m3"},
			expectedScoped: "r2",
		},
		{
			name:           "clear_drops_items",
			policy:         service.PolicyClear,
			expectedItems:  []string{"m3"},
			expectedScoped: "r2",
		},
		{
			name:           "reject_leaves_cart",
			policy:         service.PolicyReject,
			expectedErr:    service.ErrRestaurantMismatch,
			expectedItems:  []string{"m1"},
			expectedScoped: "r1",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cart, _ := newCartStore(t, testCase.policy)
			require.NoError(t, cart.AddToCart(burger, burgerHub))

			err := cart.AddToCart(thali, thaliHut)
			assert.ErrorIs(t, err, testCase.expectedErr)

			snap := cart.Snapshot()
			ids := make([]string, 0, len(snap.Items))
			for _, item := range snap.Items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, testCase.expectedItems, ids)
			assert.Equal(t, testCase.expectedScoped, snap.Restaurant.ID)
		})
	}
}

func TestCartStore_EmptyCartAcceptsAnyRestaurant(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyReject)
	require.NoError(t, cart.AddToCart(burger, burgerHub))
	cart.RemoveFromCart("m1")

	require.NoError(t, cart.AddToCart(thali, thaliHut))
	assert.Equal(t, "r2", cart.Snapshot().Restaurant.ID)
}

func TestCartStore_PersistsAndRestores(t *testing.T) {
	cart, store := newCartStore(t, service.PolicyClear)
	require.NoError(t, cart.AddToCart(burger, burgerHub))
	cart.IncrementQuantity("m1")

	restored := service.NewCartStore(service.PolicyClear,
		service.NewPersister(store, "client-1", "cart", service.CartStateVersion))
	require.NoError(t, restored.Restore(context.Background()))

	snap := restored.Snapshot()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, "Burger Hub", snap.Restaurant.RestaurantName)
}

func TestCartStore_SnapshotIsCopy(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyClear)
	require.NoError(t, cart.AddToCart(burger, burgerHub))

	snap := cart.Snapshot()
	snap.Items[0].Quantity = 99
	snap.Restaurant.ID = "other"

	fresh := cart.Snapshot()
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Equal(t, "r1", fresh.Restaurant.ID)
}

func TestCartStore_ClearsOnCheckoutStarted(t *testing.T) {
	cart, _ := newCartStore(t, service.PolicyClear)
	bus := service.NewBus("client-1", nil)
	cart.Subscribe(bus)
	require.NoError(t, cart.AddToCart(burger, burgerHub))

	require.NoError(t, bus.Publish(context.Background(), domain.Event{Type: domain.EventCheckoutStarted}))

	assert.True(t, cart.Snapshot().IsEmpty())
}

func TestParseCartPolicy(t *testing.T) {
	policy, err := service.ParseCartPolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, service.PolicyReject, policy)

	_, err = service.ParseCartPolicy("merge")
	assert.Error(t, err)
}

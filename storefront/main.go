package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food-storefront/config"
	httpapi "food-storefront/storefront/internal/api/http"
	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/service"
	"food-storefront/storefront/internal/storage"
)

const notificationLimit = 50

type app struct {
	handler *httpapi.Handler
	bus     *service.Bus
	cart    *service.CartStore
	users   *service.UserStore
	menus   *service.MenuStore
	theme   *service.ThemeStore
}

// newApp builds the stores for one client and connects them through the bus.
func newApp(settings config.Settings, clientID string, state service.StateStore, forward service.Publisher, client backend.HTTPClient) (*app, error) {
	policy, err := service.ParseCartPolicy(settings.CartPolicy)
	if err != nil {
		return nil, err
	}

	api := backend.NewClient(settings.BackendURL, settings.CheckoutPath, client)
	inbox := service.NewInbox(notificationLimit, service.LogNotifier{})
	bus := service.NewBus(clientID, forward)

	cart := service.NewCartStore(policy, service.NewPersister(state, clientID, "cart", service.CartStateVersion))
	catalog := service.NewRestaurantStore(api, inbox, bus)
	orders := service.NewOrderStore(api, cart, bus, inbox, service.DefaultQRGenerator{BaseURL: settings.PublicURL})
	menus := service.NewMenuStore(api, bus, inbox, service.NewPersister(state, clientID, "menu", service.MenuStateVersion), catalog.RestaurantID)
	users := service.NewUserStore(api, inbox, service.NewPersister(state, clientID, "user", service.UserStateVersion))
	theme := service.NewThemeStore(service.NewPersister(state, clientID, "theme", service.ThemeStateVersion))

	cart.Subscribe(bus)
	catalog.Subscribe(bus)

	return &app{
		handler: &httpapi.Handler{
			Cart:          cart,
			Orders:        orders,
			Restaurants:   catalog,
			Menus:         menus,
			Users:         users,
			Theme:         theme,
			Notifications: inbox,
		},
		bus:   bus,
		cart:  cart,
		users: users,
		menus: menus,
		theme: theme,
	}, nil
}

// restore reloads persisted state. A failing store only loses its own state.
func (a *app) restore(ctx context.Context) {
	restorers := map[string]func(context.Context) error{
		"cart":  a.cart.Restore,
		"user":  a.users.Restore,
		"menu":  a.menus.Restore,
		"theme": a.theme.Restore,
	}
	for name, restore := range restorers {
		if err := restore(ctx); err != nil {
			log.Printf("ERROR: restore %s state: %v", name, err)
		}
	}
}

func newStateStore(settings config.Settings) (service.StateStore, func()) {
	switch settings.StateBackend {
	case "redis":
		client := config.MustInitRedis(settings)
		return storage.NewRedisStore(client, settings.StateTTL), func() { client.Close() }
	case "postgres":
		db := config.MustInitPostgres(settings)
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(); err != nil {
			log.Fatal("Failed to create state table:", err)
		}
		return store, func() { db.Close() }
	default:
		return storage.NewMemoryStore(), func() {}
	}
}

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := settings.Validate(); err != nil {
		log.Fatal("Invalid config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state, closeState := newStateStore(settings)
	defer closeState()

	clientID, err := service.ResolveClientID(ctx, state, settings.ClientID)
	if err != nil {
		log.Fatal("Failed to resolve client id:", err)
	}

	var forward service.Publisher
	if settings.Kafka.Broker != "" {
		writer := config.NewKafkaWriter(settings)
		defer writer.Close()
		forward = storage.NewKafkaPublisher(writer)
	}

	a, err := newApp(settings, clientID, state, forward, backend.NewHTTPClient(settings.RequestTimeout))
	if err != nil {
		log.Fatal("Failed to build storefront:", err)
	}
	a.restore(ctx)

	if settings.Kafka.Broker != "" {
		reader := config.NewKafkaReader(settings, clientID)
		defer reader.Close()
		go service.NewConsumer(reader, a.bus).Start(ctx)
	}

	if _, err := a.handler.Users.CheckAuthentication(ctx); err != nil {
		log.Printf("WARN: initial auth check failed: %v", err)
	}

	server := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           httpapi.NewRouter(a.handler, settings.PublicURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("ERROR: shutdown: %v", err)
		}
	}()

	log.Printf("Storefront %s starting on %s (state=%s, cart policy=%s)", clientID, settings.ListenAddr, settings.StateBackend, a.cart.Policy())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Storefront stopped")
}

package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"
	"food-storefront/storefront/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Cart          *service.CartStore
	Orders        *service.OrderStore
	Restaurants   *service.RestaurantStore
	Menus         *service.MenuStore
	Users         *service.UserStore
	Theme         *service.ThemeStore
	Notifications *service.Inbox
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addToCart).Methods("POST")
	r.HandleFunc("/api/cart/items/{id}", h.removeFromCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{id}/increment", h.incrementQuantity).Methods("POST")
	r.HandleFunc("/api/cart/items/{id}/decrement", h.decrementQuantity).Methods("POST")

	r.HandleFunc("/api/checkout", h.checkout).Methods("POST")
	r.HandleFunc("/api/checkout/details", h.checkoutDetails).Methods("GET")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/restaurants/search/{text}", h.searchRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/results", h.filteredResults).Methods("GET")
	r.HandleFunc("/api/restaurants/viewed", h.viewedRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getSingleRestaurant).Methods("GET")
	r.HandleFunc("/api/filters", h.getFilters).Methods("GET")
	r.HandleFunc("/api/filters", h.resetFilters).Methods("DELETE")
	r.HandleFunc("/api/filters/{tag}", h.toggleFilter).Methods("POST")

	r.HandleFunc("/api/restaurant", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurant", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurant", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurant/orders", h.getRestaurantOrders).Methods("GET")
	r.HandleFunc("/api/restaurant/orders/{id}/status", h.updateOrderStatus).Methods("PUT")

	r.HandleFunc("/api/menu", h.createMenu).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.editMenu).Methods("PUT")

	r.HandleFunc("/api/user", h.getUser).Methods("GET")
	r.HandleFunc("/api/user/check-auth", h.checkAuth).Methods("GET")
	r.HandleFunc("/api/user/signup", h.signup).Methods("POST")
	r.HandleFunc("/api/user/login", h.login).Methods("POST")
	r.HandleFunc("/api/user/verify-email", h.verifyEmail).Methods("POST")
	r.HandleFunc("/api/user/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/user/forgot-password", h.forgotPassword).Methods("POST")
	r.HandleFunc("/api/user/reset-password/{token}", h.resetPassword).Methods("POST")
	r.HandleFunc("/api/user/profile", h.updateProfile).Methods("PUT")

	r.HandleFunc("/api/theme", h.getTheme).Methods("GET")
	r.HandleFunc("/api/theme", h.setTheme).Methods("PUT")
	r.HandleFunc("/api/notifications", h.drainNotifications).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

type cartResponse struct {
	Items      []domain.CartItem  `json:"cart"`
	Restaurant *domain.Restaurant `json:"restaurant"`
	Total      float64            `json:"total"`
}

func (h *Handler) writeCart(w http.ResponseWriter) {
	cart := h.Cart.Snapshot()
	writeJSON(w, http.StatusOK, cartResponse{Items: cart.Items, Restaurant: cart.Restaurant, Total: cart.Total()})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Menu       domain.Menu       `json:"menu"`
		Restaurant domain.Restaurant `json:"restaurant"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Menu.ID == "" || payload.Restaurant.ID == "" {
		http.Error(w, "Missing menu or restaurant id", http.StatusBadRequest)
		return
	}
	if err := h.Cart.AddToCart(payload.Menu, payload.Restaurant); err != nil {
		writeError(w, err)
		return
	}
	h.writeCart(w)
}

func (h *Handler) incrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.Cart.IncrementQuantity(mux.Vars(r)["id"])
	h.writeCart(w)
}

func (h *Handler) decrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.Cart.DecrementQuantity(mux.Vars(r)["id"])
	h.writeCart(w)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.RemoveFromCart(mux.Vars(r)["id"])
	h.writeCart(w)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.Cart.ClearCart()
	h.writeCart(w)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var details domain.DeliveryDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	url, err := h.Orders.Checkout(r.Context(), details)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *Handler) checkoutDetails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, service.DeliveryDetailsFromUser(h.Users.User()))
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.GetOrderDetails(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.ConfirmationQR(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var cuisines []string
	if raw := query.Get("selectedCuisines"); raw != "" {
		cuisines = strings.Split(raw, ",")
	}
	result, err := h.Restaurants.SearchRestaurant(r.Context(), mux.Vars(r)["text"], query.Get("searchQuery"), cuisines)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// filteredResults narrows the last search results by the applied cuisine filters.
func (h *Handler) filteredResults(w http.ResponseWriter, r *http.Request) {
	var restaurants []domain.Restaurant
	if results := h.Restaurants.SearchResults(); results != nil {
		restaurants = results.Data
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":           h.Restaurants.FilterByCuisine(restaurants),
		"appliedFilters": h.Restaurants.AppliedFilters(),
	})
}

func (h *Handler) getSingleRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.GetSingleRestaurant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant": rest})
}

func (h *Handler) viewedRestaurant(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant": h.Restaurants.SingleRestaurant()})
}

func (h *Handler) getFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"appliedFilters": h.Restaurants.AppliedFilters()})
}

func (h *Handler) toggleFilter(w http.ResponseWriter, r *http.Request) {
	h.Restaurants.SetAppliedFilter(mux.Vars(r)["tag"])
	h.getFilters(w, r)
}

func (h *Handler) resetFilters(w http.ResponseWriter, r *http.Request) {
	h.Restaurants.ResetAppliedFilter()
	h.getFilters(w, r)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.GetRestaurant(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant": rest})
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	in, err := parseRestaurantForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest, err := h.Restaurants.CreateRestaurant(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"restaurant": rest})
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	in, err := parseRestaurantForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest, err := h.Restaurants.UpdateRestaurant(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurant": rest})
}

func (h *Handler) getRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Restaurants.GetRestaurantOrders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	status, err := h.Restaurants.UpdateRestaurantOrder(r.Context(), mux.Vars(r)["id"], payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": status})
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request) {
	in, err := parseMenuForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	menu, err := h.Menus.CreateMenu(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"menu": menu})
}

func (h *Handler) editMenu(w http.ResponseWriter, r *http.Request) {
	in, err := parseMenuForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	menu, err := h.Menus.EditMenu(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"menu": menu})
}

func (h *Handler) writeSession(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]interface{}{
		"user":            h.Users.User(),
		"isAuthenticated": h.Users.IsAuthenticated(),
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	h.writeSession(w, http.StatusOK)
}

func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Users.CheckAuthentication(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var in domain.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.Users.Signup(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in domain.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.Users.Login(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		VerificationCode string `json:"verificationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.Users.VerifyEmail(r.Context(), payload.VerificationCode); err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Users.ForgotPassword(r.Context(), payload.Email); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Users.ResetPassword(r.Context(), mux.Vars(r)["token"], payload.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in domain.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := h.Users.UpdateProfile(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK)
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]domain.Theme{"theme": h.Theme.Theme()})
}

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Theme domain.Theme `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Theme.SetTheme(payload.Theme); err != nil {
		writeError(w, err)
		return
	}
	h.getTheme(w, r)
}

func (h *Handler) drainNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"notifications": h.Notifications.Drain()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: encode response: %v", err)
	}
}

type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	var apiErr *backend.APIError
	var transportErr *backend.TransportError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: validationErr.Error(), Fields: validationErr.Fields})
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if status < http.StatusBadRequest {
			// success:false on a 2xx/3xx answer
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Message: service.UserMessage(err)})
	case errors.Is(err, service.ErrStaleResponse), errors.Is(err, service.ErrRestaurantMismatch):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrNoRestaurant),
		errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTheme),
		errors.Is(err, service.ErrOrderIDRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.As(err, &transportErr), errors.Is(err, backend.ErrMissingRedirect):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: service.UserMessage(err)})
	default:
		log.Printf("ERROR: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: service.UserMessage(err)})
	}
}

package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-storefront/storefront/internal/backend"
	"food-storefront/storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/api/v1", "/order/checkout/create-checkout-session", backend.NewHTTPClient(5*time.Second))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestClient_Login(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/user/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in domain.LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "a@b.com", in.Email)

		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Welcome back",
			"user":    map[string]interface{}{"_id": "u1", "fullname": "Asha", "contact": 9876543210},
		})
	})

	user, msg, err := client.Login(context.Background(), domain.LoginInput{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome back", msg)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.Contact("9876543210"), user.Contact)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "non-2xx with message",
			status:     http.StatusBadRequest,
			body:       `{"success":false,"message":"Incorrect email or password"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Incorrect email or password",
		},
		{
			name:       "2xx with success false",
			status:     http.StatusOK,
			body:       `{"success":false,"message":"Nope"}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Nope",
		},
		{
			name:       "non-2xx without json",
			status:     http.StatusInternalServerError,
			body:       `boom`,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				io.WriteString(w, testCase.body)
			})

			_, err := client.Logout(context.Background())
			var apiErr *backend.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, testCase.wantStatus, apiErr.Status)
			assert.Equal(t, testCase.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	client := backend.NewClient("http://127.0.0.1:1/api/v1", "/checkout", backend.NewHTTPClient(time.Second))

	_, err := client.CheckAuth(context.Background())
	var transportErr *backend.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestClient_GetRestaurantNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "message": "Restaurant not found"})
	})

	rest, err := client.GetRestaurant(context.Background())
	assert.Nil(t, rest)
	assert.True(t, backend.HasStatus(err, http.StatusNotFound))
}

func TestClient_SearchRestaurants(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/restaurant/search/new delhi", r.URL.Path)
		assert.Equal(t, "pizza", r.URL.Query().Get("searchQuery"))
		assert.Equal(t, "burger,momos", r.URL.Query().Get("selectedCuisines"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    []map[string]interface{}{{"_id": "r1", "restaurantName": "Spice Hub", "cuisines": []string{"burger"}}},
		})
	})

	result, err := client.SearchRestaurants(context.Background(), "new delhi", "pizza", []string{"burger", "momos"})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Spice Hub", result.Data[0].RestaurantName)
}

func TestClient_CreateMenuMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Paneer Tikka", r.FormValue("name"))
		assert.Equal(t, "249.5", r.FormValue("price"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "tikka.png", header.Filename)
		assert.Equal(t, []byte("png-bytes"), data)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Menu added successfully",
			"menu":    map[string]interface{}{"_id": "m1", "name": "Paneer Tikka", "price": 249.5},
		})
	})

	menu, msg, err := client.CreateMenu(context.Background(), domain.MenuInput{
		Name:        "Paneer Tikka",
		Description: "Smoky",
		Price:       249.5,
		Image:       &domain.ImageFile{Filename: "tikka.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Menu added successfully", msg)
	assert.Equal(t, "m1", menu.ID)
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]interface{}
		wantURL string
		wantErr error
	}{
		{
			name:    "redirect returned",
			body:    map[string]interface{}{"success": true, "session": map[string]string{"id": "cs_1", "url": "https://pay.example/cs_1"}},
			wantURL: "https://pay.example/cs_1",
		},
		{
			name:    "missing url",
			body:    map[string]interface{}{"success": true, "session": map[string]string{"id": "cs_1"}},
			wantErr: backend.ErrMissingRedirect,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/order/checkout/create-checkout-session", r.URL.Path)
				var req domain.CheckoutRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "r1", req.RestaurantID)
				writeJSON(w, http.StatusOK, testCase.body)
			})

			url, err := client.CreateCheckoutSession(context.Background(), domain.CheckoutRequest{RestaurantID: "r1"})
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.Equal(t, testCase.wantURL, url)
		})
	}
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/restaurant/order/o1/status", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": "preparing", "message": "Status updated"})
	})

	status, msg, err := client.UpdateOrderStatus(context.Background(), "o1", domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, status)
	assert.Equal(t, "Status updated", msg)
}

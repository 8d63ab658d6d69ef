package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"food-storefront/storefront/internal/domain"
)

type restaurantResponse struct {
	Restaurant *domain.Restaurant `json:"restaurant"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

type statusResponse struct {
	Status domain.OrderStatus `json:"status"`
}

func (c *Client) CreateRestaurant(ctx context.Context, in domain.RestaurantInput) (*domain.Restaurant, string, error) {
	form, err := restaurantForm(in)
	if err != nil {
		return nil, "", err
	}
	var resp restaurantResponse
	msg, err := c.sendForm(ctx, http.MethodPost, "/restaurant", form, &resp)
	return resp.Restaurant, msg, err
}

func (c *Client) UpdateRestaurant(ctx context.Context, in domain.RestaurantInput) (*domain.Restaurant, string, error) {
	form, err := restaurantForm(in)
	if err != nil {
		return nil, "", err
	}
	var resp restaurantResponse
	msg, err := c.sendForm(ctx, http.MethodPut, "/restaurant", form, &resp)
	return resp.Restaurant, msg, err
}

func (c *Client) GetRestaurant(ctx context.Context) (*domain.Restaurant, error) {
	var resp restaurantResponse
	_, err := c.getJSON(ctx, "/restaurant", &resp)
	return resp.Restaurant, err
}

func (c *Client) GetRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var resp restaurantResponse
	_, err := c.getJSON(ctx, "/restaurant/"+url.PathEscape(id), &resp)
	return resp.Restaurant, err
}

func (c *Client) SearchRestaurants(ctx context.Context, text, query string, cuisines []string) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set("searchQuery", query)
	params.Set("selectedCuisines", strings.Join(cuisines, ","))

	var resp domain.SearchResult
	msg, err := c.getJSON(ctx, "/restaurant/search/"+url.PathEscape(text)+"?"+params.Encode(), &resp)
	if err != nil {
		return nil, err
	}
	resp.Message = msg
	return &resp, nil
}

func (c *Client) GetRestaurantOrders(ctx context.Context) ([]domain.Order, error) {
	var resp ordersResponse
	_, err := c.getJSON(ctx, "/restaurant/order", &resp)
	return resp.Orders, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.OrderStatus, string, error) {
	var resp statusResponse
	body := map[string]domain.OrderStatus{"status": status}
	msg, err := c.sendJSON(ctx, http.MethodPut, "/restaurant/order/"+url.PathEscape(orderID)+"/status", body, &resp)
	return resp.Status, msg, err
}

func restaurantForm(in domain.RestaurantInput) (*multipartForm, error) {
	cuisines, err := json.Marshal(in.Cuisines)
	if err != nil {
		return nil, err
	}
	form := newMultipartForm()
	form.set("restaurantName", in.RestaurantName)
	form.set("city", in.City)
	form.set("country", in.Country)
	form.set("deliveryTime", strconv.Itoa(in.DeliveryTime))
	form.set("cuisines", string(cuisines))
	if in.Image != nil {
		form.attach("imageFile", in.Image)
	}
	return form, nil
}

package backend

import (
	"context"
	"errors"
	"net/http"

	"food-storefront/storefront/internal/domain"
)

var ErrMissingRedirect = errors.New("checkout session has no redirect url")

type checkoutResponse struct {
	Session struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"session"`
}

// CreateCheckoutSession returns the payment provider URL the user is sent to.
func (c *Client) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (string, error) {
	var resp checkoutResponse
	if _, err := c.sendJSON(ctx, http.MethodPost, c.checkoutPath, req, &resp); err != nil {
		return "", err
	}
	if resp.Session.URL == "" {
		return "", ErrMissingRedirect
	}
	return resp.Session.URL, nil
}

func (c *Client) GetOrders(ctx context.Context) ([]domain.Order, error) {
	var resp ordersResponse
	_, err := c.getJSON(ctx, "/order", &resp)
	return resp.Orders, err
}

package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"food-storefront/storefront/internal/domain"
)

type menuResponse struct {
	Menu *domain.Menu `json:"menu"`
}

func (c *Client) CreateMenu(ctx context.Context, in domain.MenuInput) (*domain.Menu, string, error) {
	var resp menuResponse
	msg, err := c.sendForm(ctx, http.MethodPost, "/menu", menuForm(in), &resp)
	return resp.Menu, msg, err
}

func (c *Client) EditMenu(ctx context.Context, menuID string, in domain.MenuInput) (*domain.Menu, string, error) {
	var resp menuResponse
	msg, err := c.sendForm(ctx, http.MethodPut, "/menu/"+url.PathEscape(menuID), menuForm(in), &resp)
	return resp.Menu, msg, err
}

func menuForm(in domain.MenuInput) *multipartForm {
	form := newMultipartForm()
	form.set("name", in.Name)
	form.set("description", in.Description)
	form.set("price", strconv.FormatFloat(in.Price, 'f', -1, 64))
	if in.Image != nil {
		form.attach("image", in.Image)
	}
	return form
}

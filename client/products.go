package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/productos/", nil, nil, &out, noAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Product{}
	}
	return out, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/productos/%d/", id), nil, nil, &out, noAuth)
	return out, err
}

// FilterProducts searches the catalog by column and value.
func (c *Client) FilterProducts(ctx context.Context, criteria, value string) ([]Product, error) {
	query := url.Values{}
	query.Set("criteria", criteria)
	query.Set("value", value)

	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/filter_products/", query, nil, &out, noAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Product{}
	}
	return out, nil
}

// PatchProductStock sets a product's stock.
func (c *Client) PatchProductStock(ctx context.Context, id int64, cantidad int) (Product, error) {
	body := map[string]any{"cantidad_producto": cantidad}
	var out Product
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/productos/%d/", id), nil, body, &out, withAuth)
	return out, err
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/productos/%d/", id), nil, nil, nil, withAuth)
}

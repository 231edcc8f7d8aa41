package client

import (
	"context"
	"fmt"
	"net/http"
)

// ListCategories fetches every category. An empty store yields an empty slice.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/api/categorias/", nil, nil, &out, withAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Category{}
	}
	return out, nil
}

// GetCategory fetches one category by id.
func (c *Client) GetCategory(ctx context.Context, id int64) (Category, error) {
	var out Category
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/categorias/%d/", id), nil, nil, &out, withAuth)
	return out, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, nombre string, descripcion *string) (Category, error) {
	body := map[string]any{"nombre": nombre}
	if descripcion != nil {
		body["descripcion"] = *descripcion
	}
	var out Category
	err := c.do(ctx, http.MethodPost, "/api/categorias/", nil, body, &out, withAuth)
	return out, err
}

// UpdateCategory replaces a category's fields.
func (c *Client) UpdateCategory(ctx context.Context, id int64, nombre string, descripcion *string) (Category, error) {
	body := map[string]any{"nombre": nombre}
	if descripcion != nil {
		body["descripcion"] = *descripcion
	}
	var out Category
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categorias/%d/", id), nil, body, &out, withAuth)
	return out, err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categorias/%d/", id), nil, nil, nil, withAuth)
}

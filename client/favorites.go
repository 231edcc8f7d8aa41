package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListFavorites fetches favorites, optionally filtered by user.
func (c *Client) ListFavorites(ctx context.Context, userID int64) ([]Favorite, error) {
	var query url.Values
	if userID > 0 {
		query = url.Values{}
		query.Set("usuario_id", strconv.FormatInt(userID, 10))
	}

	var out []Favorite
	if err := c.do(ctx, http.MethodGet, "/api/favoritos/", query, nil, &out, noAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Favorite{}
	}
	return out, nil
}

// CreateFavorite marks a product as favorite.
func (c *Client) CreateFavorite(ctx context.Context, userID, productID int64) (Favorite, error) {
	body := map[string]any{"usuario_id": userID, "producto_id": productID}
	var out Favorite
	err := c.do(ctx, http.MethodPost, "/api/favoritos/", nil, body, &out, noAuth)
	return out, err
}

// DeleteFavorite removes a favorite by its record id.
func (c *Client) DeleteFavorite(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/favoritos/%d/", id), nil, nil, nil, noAuth)
}

// ToggleFavorite flips a product's favorite state for the user. The local
// answer changes only after the server confirms: a failed create stays
// un-favorited, a failed delete stays favorited.
func (c *Client) ToggleFavorite(ctx context.Context, userID, productID int64) (bool, error) {
	records, err := c.ListFavorites(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, record := range records {
		if record.ProductoID == productID {
			if err := c.DeleteFavorite(ctx, record.ID); err != nil {
				return true, err
			}
			return false, nil
		}
	}

	if _, err := c.CreateFavorite(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

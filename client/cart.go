package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// FetchCartLines lists a user's cart joined with product data.
func (c *Client) FetchCartLines(ctx context.Context, userID int64) ([]CartLineRecord, error) {
	query := url.Values{}
	query.Set("criteria", "usuario_id")
	query.Set("value", strconv.FormatInt(userID, 10))

	var out []CartLineRecord
	if err := c.do(ctx, http.MethodGet, "/api/search_users_products/", query, nil, &out, withAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []CartLineRecord{}
	}
	return out, nil
}

// AddCartLine puts a product in the user's cart.
func (c *Client) AddCartLine(ctx context.Context, userID, productID int64, cantidad int) (CartLineRecord, error) {
	body := map[string]any{
		"usuario_id":             userID,
		"producto_id":            productID,
		"cantidad_user_producto": cantidad,
	}
	var out CartLineRecord
	err := c.do(ctx, http.MethodPost, "/api/users_products/", nil, body, &out, withAuth)
	return out, err
}

// PatchCartLine sets a line's quantity. The legacy body key is
// cantidad_producto even though it updates the cart line.
func (c *Client) PatchCartLine(ctx context.Context, lineID int64, cantidad int) (CartLineRecord, error) {
	body := map[string]any{"cantidad_producto": cantidad}
	var out CartLineRecord
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/users_products/%d/", lineID), nil, body, &out, withAuth)
	return out, err
}

// RemoveCartLine deletes one cart line.
func (c *Client) RemoveCartLine(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users_products/%d/", lineID), nil, nil, nil, withAuth)
}

// EmptyCart deletes every line in the user's cart.
func (c *Client) EmptyCart(ctx context.Context, userID int64) error {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))
	return c.do(ctx, http.MethodDelete, "/api/delete_all_userProducts/", query, nil, nil, withAuth)
}

// CartLine is a client-side cart row with its quantity controls. Requested is
// what the user asked for; Available is the product's stock ceiling.
type CartLine struct {
	ID        int64
	ProductID int64
	Nombre    string
	Precio    decimal.Decimal
	Requested int
	Available int

	// busy serializes mutations on this line; a second tap while a request
	// is in flight is ignored.
	busy atomic.Bool
}

// Busy reports whether a mutation is in flight for this line.
func (l *CartLine) Busy() bool {
	return l.busy.Load()
}

// Subtotal is precio × cantidad for this line.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Precio.Mul(decimal.NewFromInt(int64(l.Requested)))
}

// Cart holds the signed-in user's lines and keeps the session total in sync
// after every successful mutation.
type Cart struct {
	client *Client

	mu    sync.Mutex
	lines []*CartLine
}

// NewCart builds an empty cart bound to the client's session user.
func NewCart(c *Client) *Cart {
	return &Cart{client: c}
}

// Load replaces the cart state with the server's lines for the session user.
func (c *Cart) Load(ctx context.Context) error {
	userID := c.client.Session().UserID()
	records, err := c.client.FetchCartLines(ctx, userID)
	if err != nil {
		return err
	}

	lines := make([]*CartLine, 0, len(records))
	for _, record := range records {
		lines = append(lines, &CartLine{
			ID:        record.ID,
			ProductID: record.ProductoID,
			Nombre:    record.Nombre,
			Precio:    record.Precio,
			Requested: record.CantidadUserProducto,
			Available: record.CantidadProducto,
		})
	}

	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
	return nil
}

// Lines returns the current cart lines.
func (c *Cart) Lines() []*CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Increment raises a line's quantity by one. Nothing happens, not even a
// request, when the line is already at the stock ceiling, the product is
// out of stock, or a mutation is still in flight.
func (c *Cart) Increment(ctx context.Context, line *CartLine) error {
	if line.Requested >= line.Available || line.Available <= 0 {
		return nil
	}
	if !line.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer line.busy.Store(false)

	if _, err := c.client.PatchCartLine(ctx, line.ID, line.Requested+1); err != nil {
		return err
	}
	line.Requested++
	return c.persistTotal()
}

// Decrement lowers a line's quantity by one. Nothing happens at zero or while
// a mutation is still in flight.
func (c *Cart) Decrement(ctx context.Context, line *CartLine) error {
	if line.Requested <= 0 {
		return nil
	}
	if !line.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer line.busy.Store(false)

	if _, err := c.client.PatchCartLine(ctx, line.ID, line.Requested-1); err != nil {
		return err
	}
	line.Requested--
	return c.persistTotal()
}

// Total sums precio × cantidad across the cart.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// FormattedTotal renders the total for display, always with two decimals.
func (c *Cart) FormattedTotal() string {
	return "$" + c.Total().StringFixed(2)
}

// persistTotal writes the post-mutation total to the session, so a reload
// never sees the stale pre-mutation figure.
func (c *Cart) persistTotal() error {
	return c.client.Session().SetTotal(c.Total())
}

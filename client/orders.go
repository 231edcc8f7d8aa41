package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// ListOrders fetches every order.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/api/pedidos/", nil, nil, &out, withAuth); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Order{}
	}
	return out, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id int64) (Order, error) {
	var out Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/pedidos/%d/", id), nil, nil, &out, withAuth)
	return out, err
}

// CreateOrder creates a pedido for the given user.
func (c *Client) CreateOrder(ctx context.Context, usuarioID int64, form OrderForm, precioTotal decimal.Decimal) (Order, error) {
	body := map[string]any{
		"usuario_id":   usuarioID,
		"cliente":      form.Cliente,
		"direccion":    form.Direccion,
		"metodo_pago":  form.MetodoPago,
		"precio_total": precioTotal,
	}
	var out Order
	err := c.do(ctx, http.MethodPost, "/api/pedidos/", nil, body, &out, withAuth)
	return out, err
}

// MarkOrderDelivered flips estado_pedido keeping the other fields.
func (c *Client) MarkOrderDelivered(ctx context.Context, order Order) (Order, error) {
	body := map[string]any{
		"cliente":       order.Cliente,
		"direccion":     order.Direccion,
		"metodo_pago":   order.MetodoPago,
		"estado_pedido": true,
		"precio_total":  order.PrecioTotal,
	}
	var out Order
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/pedidos/%d/", order.ID), nil, body, &out, withAuth)
	return out, err
}

// DeleteOrder cancels an order outright.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/pedidos/%d/", id), nil, nil, nil, withAuth)
}

// FillOrderItems batch-inserts pedidos_productos rows.
func (c *Client) FillOrderItems(ctx context.Context, items []OrderItem) ([]OrderItem, error) {
	payload := make([]map[string]any, 0, len(items))
	for _, item := range items {
		payload = append(payload, map[string]any{
			"pedido_ppid":               item.PedidoPpid,
			"producto_ppid":             item.ProductoPpid,
			"cantidad_producto_carrito": item.CantidadProductoCarrito,
		})
	}

	var out []OrderItem
	err := c.do(ctx, http.MethodPost, "/api/llenarTablaProductosPedidos", nil, map[string]any{"items": payload}, &out, withAuth)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateInvoice creates (or re-reads) the factura for an order.
func (c *Client) GenerateInvoice(ctx context.Context, orderID int64) (Invoice, error) {
	query := url.Values{}
	query.Set("pedido_id", strconv.FormatInt(orderID, 10))

	var out Invoice
	err := c.do(ctx, http.MethodGet, "/api/generar_factura/", query, nil, &out, withAuth)
	return out, err
}

// SendCancelEmail notifies a customer their order was cancelled.
func (c *Client) SendCancelEmail(ctx context.Context, dest, mensaje string) error {
	query := url.Values{}
	query.Set("dest", dest)
	query.Set("mensaje", mensaje)
	return c.do(ctx, http.MethodGet, "/api/send_email_cancel/", query, nil, nil, withAuth)
}

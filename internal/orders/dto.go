package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDTO is the wire representation of a pedido. estado_pedido reports
// delivery: false while pending, true once delivered.
type OrderDTO struct {
	ID           int64           `json:"id"`
	UsuarioID    int64           `json:"usuario_id"`
	Cliente      string          `json:"cliente"`
	Direccion    string          `json:"direccion"`
	MetodoPago   string          `json:"metodo_pago"`
	EstadoPedido bool            `json:"estado_pedido"`
	FechaPedido  time.Time       `json:"fecha_pedido"`
	PrecioTotal  decimal.Decimal `json:"precio_total"`
}

// OrderPageDTO wraps one cursor page of pedidos for the admin order history.
type OrderPageDTO struct {
	Items      []OrderDTO `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// CreateOrderInput is the payload for POST /api/pedidos/.
type CreateOrderInput struct {
	UsuarioID   int64           `json:"usuario_id" validate:"required,min=1"`
	Cliente     string          `json:"cliente" validate:"required,max=200"`
	Direccion   string          `json:"direccion" validate:"required,max=300"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,max=50"`
	PrecioTotal decimal.Decimal `json:"precio_total"`
}

// UpdateOrderInput is the payload for PUT /api/pedidos/{id}/. The admin uses
// it mainly to flip estado_pedido when an order is delivered.
type UpdateOrderInput struct {
	Cliente      string          `json:"cliente" validate:"required,max=200"`
	Direccion    string          `json:"direccion" validate:"required,max=300"`
	MetodoPago   string          `json:"metodo_pago" validate:"required,max=50"`
	EstadoPedido bool            `json:"estado_pedido"`
	PrecioTotal  decimal.Decimal `json:"precio_total"`
}

// OrderItemDTO keeps the historical pedidos_productos wire names.
type OrderItemDTO struct {
	ID                      int64 `json:"id"`
	PedidoPpid              int64 `json:"pedido_ppid"`
	ProductoPpid            int64 `json:"producto_ppid"`
	CantidadProductoCarrito int   `json:"cantidad_producto_carrito"`
}

// CreateOrderItemInput is a single pedidos_productos row.
type CreateOrderItemInput struct {
	PedidoPpid              int64 `json:"pedido_ppid" validate:"required,min=1"`
	ProductoPpid            int64 `json:"producto_ppid" validate:"required,min=1"`
	CantidadProductoCarrito int   `json:"cantidad_producto_carrito" validate:"required,min=1"`
}

// InvoiceDTO is the billing artifact produced for an order.
type InvoiceDTO struct {
	ID        int64           `json:"id"`
	PedidoID  int64           `json:"pedido_id"`
	Numero    string          `json:"numero"`
	Total     decimal.Decimal `json:"total"`
	EmitidaAt time.Time       `json:"emitida_at"`
}

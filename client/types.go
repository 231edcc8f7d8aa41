package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category mirrors the categorias wire contract.
type Category struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
}

// Product mirrors the productos wire contract. CantidadProducto is stock.
type Product struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Precio           decimal.Decimal `json:"precio"`
	CantidadProducto int             `json:"cantidad_producto"`
	FotoProducto     *string         `json:"foto_producto,omitempty"`
	CategoriaID      *int64          `json:"categoria_id,omitempty"`
}

// User mirrors the usuarios wire contract.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	IsStaff       bool   `json:"is_staff"`
	IsSuperuser   bool   `json:"is_superuser"`
	EmailVerified bool   `json:"email_verified"`
	IsActive      bool   `json:"is_active"`
}

// CartLineRecord is a users_products row joined with its product.
type CartLineRecord struct {
	ID                   int64           `json:"id"`
	UsuarioID            int64           `json:"usuario_id"`
	ProductoID           int64           `json:"producto_id"`
	CantidadUserProducto int             `json:"cantidad_user_producto"`
	Nombre               string          `json:"nombre"`
	Precio               decimal.Decimal `json:"precio"`
	CantidadProducto     int             `json:"cantidad_producto"`
	FotoProducto         *string         `json:"foto_producto,omitempty"`
}

// Favorite mirrors the favoritos wire contract.
type Favorite struct {
	ID         int64 `json:"id"`
	UsuarioID  int64 `json:"usuario_id"`
	ProductoID int64 `json:"producto_id"`
}

// Order mirrors the pedidos wire contract.
type Order struct {
	ID           int64           `json:"id"`
	UsuarioID    int64           `json:"usuario_id"`
	Cliente      string          `json:"cliente"`
	Direccion    string          `json:"direccion"`
	MetodoPago   string          `json:"metodo_pago"`
	EstadoPedido bool            `json:"estado_pedido"`
	FechaPedido  time.Time       `json:"fecha_pedido"`
	PrecioTotal  decimal.Decimal `json:"precio_total"`
}

// OrderForm is what checkout collects from the buyer.
type OrderForm struct {
	Cliente    string `json:"cliente"`
	Direccion  string `json:"direccion"`
	MetodoPago string `json:"metodo_pago"`
}

// OrderItem keeps the historical pedidos_productos wire names.
type OrderItem struct {
	ID                      int64 `json:"id"`
	PedidoPpid              int64 `json:"pedido_ppid"`
	ProductoPpid            int64 `json:"producto_ppid"`
	CantidadProductoCarrito int   `json:"cantidad_producto_carrito"`
}

// Invoice is the factura produced for an order.
type Invoice struct {
	ID        int64           `json:"id"`
	PedidoID  int64           `json:"pedido_id"`
	Numero    string          `json:"numero"`
	Total     decimal.Decimal `json:"total"`
	EmitidaAt time.Time       `json:"emitida_at"`
}

// LoginResult is the POST /login/ payload.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}

// StageResult reports one stage of a checkout run.
type StageResult struct {
	Stage string `json:"stage"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// CheckoutResult is the POST /api/checkout payload.
type CheckoutResult struct {
	Order   Order         `json:"order"`
	Invoice Invoice       `json:"invoice"`
	Stages  []StageResult `json:"stages"`
}

// TopProduct is one best-sellers chart entry.
type TopProduct struct {
	Nombre        string `json:"nombre"`
	TotalVendidos int64  `json:"total_vendidos"`
}

// ProductSalesRow is one best-sellers table row.
type ProductSalesRow struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Precio           decimal.Decimal `json:"precio"`
	EstadoProducto   bool            `json:"estado_producto"`
	CantidadProducto int             `json:"cantidad_producto"`
	TotalVendidos    int64           `json:"total_vendidos"`
	Ingresos         decimal.Decimal `json:"ingresos"`
}

// UserIndicator aggregates one customer's purchase activity.
type UserIndicator struct {
	UsuarioID    int64           `json:"usuario_id"`
	Username     string          `json:"username"`
	TotalPedidos int64           `json:"total_pedidos"`
	TotalGastado decimal.Decimal `json:"total_gastado"`
}

// DailySales is one day of booked revenue.
type DailySales struct {
	Fecha string          `json:"fecha"`
	Total decimal.Decimal `json:"total"`
}

// PaymentMethod counts orders per payment method.
type PaymentMethod struct {
	MetodoPago   string `json:"metodo_pago"`
	TotalPedidos int64  `json:"total_pedidos"`
}

// TotalSales is the all-time revenue figure.
type TotalSales struct {
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// OrderStatusCount counts orders by delivery state.
type OrderStatusCount struct {
	EstadoPedido bool  `json:"estado_pedido"`
	TotalPedidos int64 `json:"total_pedidos"`
}

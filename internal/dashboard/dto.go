package dashboard

import "github.com/shopspring/decimal"

// TopProductDTO feeds the best-sellers chart.
type TopProductDTO struct {
	Nombre        string `json:"nombre"`
	TotalVendidos int64  `json:"total_vendidos"`
}

// ProductSalesRowDTO is one row of the best-sellers admin table.
// estado_producto reports whether the product still has stock.
type ProductSalesRowDTO struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Precio           decimal.Decimal `json:"precio"`
	EstadoProducto   bool            `json:"estado_producto"`
	CantidadProducto int             `json:"cantidad_producto"`
	TotalVendidos    int64           `json:"total_vendidos"`
	Ingresos         decimal.Decimal `json:"ingresos"`
}

// UserIndicatorDTO aggregates a customer's purchase activity.
type UserIndicatorDTO struct {
	UsuarioID    int64           `json:"usuario_id"`
	Username     string          `json:"username"`
	TotalPedidos int64           `json:"total_pedidos"`
	TotalGastado decimal.Decimal `json:"total_gastado"`
}

// DailySalesDTO is the revenue booked on one calendar day (YYYY-MM-DD).
type DailySalesDTO struct {
	Fecha string          `json:"fecha"`
	Total decimal.Decimal `json:"total"`
}

// PaymentMethodDTO counts orders per payment method.
type PaymentMethodDTO struct {
	MetodoPago   string `json:"metodo_pago"`
	TotalPedidos int64  `json:"total_pedidos"`
}

// TotalSalesDTO is the all-time revenue figure.
type TotalSalesDTO struct {
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// OrderStatusDTO counts orders by delivery state.
type OrderStatusDTO struct {
	EstadoPedido bool  `json:"estado_pedido"`
	TotalPedidos int64 `json:"total_pedidos"`
}

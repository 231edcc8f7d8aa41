package client

import (
	"context"
	"net/http"
)

// TopSellingProducts fetches the best-sellers chart data.
func (c *Client) TopSellingProducts(ctx context.Context) ([]TopProduct, error) {
	var out []TopProduct
	err := c.do(ctx, http.MethodGet, "/api/productos_mas_vendidos", nil, nil, &out, withAuth)
	return out, err
}

// ProductSalesTable fetches the best-sellers admin table.
func (c *Client) ProductSalesTable(ctx context.Context) ([]ProductSalesRow, error) {
	var out []ProductSalesRow
	err := c.do(ctx, http.MethodGet, "/api/productosMasVendidos", nil, nil, &out, withAuth)
	return out, err
}

// UserIndicators fetches per-customer purchase aggregates.
func (c *Client) UserIndicators(ctx context.Context) ([]UserIndicator, error) {
	var out []UserIndicator
	err := c.do(ctx, http.MethodGet, "/api/indicadores_por_usuario", nil, nil, &out, withAuth)
	return out, err
}

// DailySalesReport fetches revenue grouped by calendar day.
func (c *Client) DailySalesReport(ctx context.Context) ([]DailySales, error) {
	var out []DailySales
	err := c.do(ctx, http.MethodGet, "/api/ventas_diarias", nil, nil, &out, withAuth)
	return out, err
}

// PaymentMethodsReport fetches order counts per payment method.
func (c *Client) PaymentMethodsReport(ctx context.Context) ([]PaymentMethod, error) {
	var out []PaymentMethod
	err := c.do(ctx, http.MethodGet, "/api/metodos_pago_mas_utilizados", nil, nil, &out, withAuth)
	return out, err
}

// TotalSalesReport fetches the all-time revenue figure.
func (c *Client) TotalSalesReport(ctx context.Context) (TotalSales, error) {
	var out TotalSales
	err := c.do(ctx, http.MethodGet, "/api/valor_total_ventas", nil, nil, &out, withAuth)
	return out, err
}

// OrdersByStatusReport fetches order counts by delivery state.
func (c *Client) OrdersByStatusReport(ctx context.Context) ([]OrderStatusCount, error) {
	var out []OrderStatusCount
	err := c.do(ctx, http.MethodGet, "/api/pedidos_por_estado", nil, nil, &out, withAuth)
	return out, err
}

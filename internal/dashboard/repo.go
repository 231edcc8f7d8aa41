package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository runs the read-only aggregate queries behind the dashboard.
// Money columns are cast to TEXT before scanning so they survive both the
// postgres and sqlite drivers without float rounding.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a dashboard repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TopSellingProducts returns the products with the highest units sold.
func (r *Repository) TopSellingProducts(ctx context.Context, limit int) ([]TopProductDTO, error) {
	var rows []TopProductDTO
	err := r.db.WithContext(ctx).
		Table("pedidos_productos pp").
		Joins("JOIN productos p ON p.id = pp.producto_ppid").
		Select("p.nombre, SUM(pp.cantidad_producto_carrito) AS total_vendidos").
		Group("p.id, p.nombre").
		Order("total_vendidos DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []TopProductDTO{}
	}
	return rows, nil
}

type productSalesRow struct {
	ID               int64
	Nombre           string
	Precio           string
	CantidadProducto int
	TotalVendidos    int64
	Ingresos         string
}

// ProductSalesTable returns every product with its units sold and revenue,
// including products that have never been ordered.
func (r *Repository) ProductSalesTable(ctx context.Context) ([]ProductSalesRowDTO, error) {
	var rows []productSalesRow
	err := r.db.WithContext(ctx).
		Table("productos p").
		Joins("LEFT JOIN pedidos_productos pp ON pp.producto_ppid = p.id").
		Select(`p.id, p.nombre, CAST(p.precio AS TEXT) AS precio, p.cantidad_producto,
COALESCE(SUM(pp.cantidad_producto_carrito), 0) AS total_vendidos,
CAST(COALESCE(SUM(pp.cantidad_producto_carrito), 0) * p.precio AS TEXT) AS ingresos`).
		Group("p.id, p.nombre, p.precio, p.cantidad_producto").
		Order("total_vendidos DESC, p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductSalesRowDTO, 0, len(rows))
	for _, row := range rows {
		precio, err := decimal.NewFromString(row.Precio)
		if err != nil {
			return nil, err
		}
		ingresos, err := decimal.NewFromString(row.Ingresos)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, ProductSalesRowDTO{
			ID:               row.ID,
			Nombre:           row.Nombre,
			Precio:           precio,
			EstadoProducto:   row.CantidadProducto > 0,
			CantidadProducto: row.CantidadProducto,
			TotalVendidos:    row.TotalVendidos,
			Ingresos:         ingresos,
		})
	}
	return dtos, nil
}

type userIndicatorRow struct {
	UsuarioID    int64
	Username     string
	TotalPedidos int64
	TotalGastado string
}

// UserIndicators aggregates order count and spend per customer.
func (r *Repository) UserIndicators(ctx context.Context) ([]UserIndicatorDTO, error) {
	var rows []userIndicatorRow
	err := r.db.WithContext(ctx).
		Table("pedidos pe").
		Joins("JOIN usuarios u ON u.id = pe.usuario_id").
		Select(`u.id AS usuario_id, u.username, COUNT(pe.id) AS total_pedidos,
CAST(COALESCE(SUM(pe.precio_total), 0) AS TEXT) AS total_gastado`).
		Group("u.id, u.username").
		Order("SUM(pe.precio_total) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]UserIndicatorDTO, 0, len(rows))
	for _, row := range rows {
		gastado, err := decimal.NewFromString(row.TotalGastado)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, UserIndicatorDTO{
			UsuarioID:    row.UsuarioID,
			Username:     row.Username,
			TotalPedidos: row.TotalPedidos,
			TotalGastado: gastado,
		})
	}
	return dtos, nil
}

type dailySalesRow struct {
	Fecha string
	Total string
}

// DailySales groups revenue by calendar day. The date is sliced out of the
// timestamp's text form, which both supported drivers render ISO-first.
func (r *Repository) DailySales(ctx context.Context) ([]DailySalesDTO, error) {
	var rows []dailySalesRow
	err := r.db.WithContext(ctx).
		Table("pedidos").
		Select(`SUBSTR(CAST(fecha_pedido AS TEXT), 1, 10) AS fecha,
CAST(COALESCE(SUM(precio_total), 0) AS TEXT) AS total`).
		Group("SUBSTR(CAST(fecha_pedido AS TEXT), 1, 10)").
		Order("fecha ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]DailySalesDTO, 0, len(rows))
	for _, row := range rows {
		total, err := decimal.NewFromString(row.Total)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, DailySalesDTO{Fecha: row.Fecha, Total: total})
	}
	return dtos, nil
}

// PaymentMethods counts orders per payment method, most used first.
func (r *Repository) PaymentMethods(ctx context.Context) ([]PaymentMethodDTO, error) {
	var rows []PaymentMethodDTO
	err := r.db.WithContext(ctx).
		Table("pedidos").
		Select("metodo_pago, COUNT(id) AS total_pedidos").
		Group("metodo_pago").
		Order("total_pedidos DESC, metodo_pago ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []PaymentMethodDTO{}
	}
	return rows, nil
}

// TotalSales sums precio_total across every order.
func (r *Repository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Table("pedidos").
		Select("CAST(COALESCE(SUM(precio_total), 0) AS TEXT)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil || *raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

// OrdersByStatus counts pending versus delivered orders.
func (r *Repository) OrdersByStatus(ctx context.Context) ([]OrderStatusDTO, error) {
	var rows []OrderStatusDTO
	err := r.db.WithContext(ctx).
		Table("pedidos").
		Select("estado_pedido, COUNT(id) AS total_pedidos").
		Group("estado_pedido").
		Order("estado_pedido ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []OrderStatusDTO{}
	}
	return rows, nil
}

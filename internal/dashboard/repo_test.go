package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var dashboardSchema = []string{
	`CREATE TABLE productos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		descripcion TEXT,
		precio NUMERIC NOT NULL DEFAULT 0,
		cantidad_producto INTEGER NOT NULL DEFAULT 0,
		foto_producto TEXT,
		categoria_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE usuarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_staff BOOLEAN NOT NULL DEFAULT 0,
		is_superuser BOOLEAN NOT NULL DEFAULT 0,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		last_login_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE pedidos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL,
		cliente TEXT NOT NULL,
		direccion TEXT NOT NULL,
		metodo_pago TEXT NOT NULL,
		estado_pedido BOOLEAN NOT NULL DEFAULT 0,
		fecha_pedido DATETIME,
		precio_total NUMERIC NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE pedidos_productos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pedido_ppid INTEGER NOT NULL,
		producto_ppid INTEGER NOT NULL,
		cantidad_producto_carrito INTEGER NOT NULL,
		created_at DATETIME
	)`,
}

func newDashboardRepo(t *testing.T) (*Repository, *db.Client) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range dashboardSchema {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}
	return NewRepository(client.DB()), client
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func seedSalesFixture(t *testing.T, client *db.Client) {
	t.Helper()

	products := []models.Product{
		{Nombre: "Laptop", Precio: mustDecimal(t, "100.00"), CantidadProducto: 5},
		{Nombre: "Mouse", Precio: mustDecimal(t, "25.00"), CantidadProducto: 0},
		{Nombre: "Teclado", Precio: mustDecimal(t, "40.00"), CantidadProducto: 8},
	}
	for i := range products {
		require.NoError(t, client.DB().Create(&products[i]).Error)
	}

	users := []models.User{
		{Username: "ana", Email: "ana@example.com", PasswordHash: "x"},
		{Username: "luis", Email: "luis@example.com", PasswordHash: "x"},
	}
	for i := range users {
		require.NoError(t, client.DB().Create(&users[i]).Error)
	}

	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 16, 30, 0, 0, time.UTC)
	orders := []models.Order{
		{UsuarioID: users[0].ID, Cliente: "Ana", Direccion: "Calle 1", MetodoPago: "tarjeta", EstadoPedido: true, FechaPedido: day1, PrecioTotal: mustDecimal(t, "225.00")},
		{UsuarioID: users[0].ID, Cliente: "Ana", Direccion: "Calle 1", MetodoPago: "tarjeta", FechaPedido: day2, PrecioTotal: mustDecimal(t, "40.00")},
		{UsuarioID: users[1].ID, Cliente: "Luis", Direccion: "Carrera 2", MetodoPago: "efectivo", FechaPedido: day2, PrecioTotal: mustDecimal(t, "100.00")},
	}
	for i := range orders {
		require.NoError(t, client.DB().Create(&orders[i]).Error)
	}

	items := []models.OrderItem{
		{PedidoID: orders[0].ID, ProductoID: products[0].ID, CantidadProductoCarrito: 2},
		{PedidoID: orders[0].ID, ProductoID: products[1].ID, CantidadProductoCarrito: 1},
		{PedidoID: orders[1].ID, ProductoID: products[2].ID, CantidadProductoCarrito: 1},
		{PedidoID: orders[2].ID, ProductoID: products[0].ID, CantidadProductoCarrito: 1},
	}
	for i := range items {
		require.NoError(t, client.DB().Create(&items[i]).Error)
	}
}

func TestTopSellingProducts(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	rows, err := repo.TopSellingProducts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Laptop", rows[0].Nombre)
	require.Equal(t, int64(3), rows[0].TotalVendidos)
}

func TestTopSellingProductsEmpty(t *testing.T) {
	repo, _ := newDashboardRepo(t)

	rows, err := repo.TopSellingProducts(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestProductSalesTable(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	rows, err := repo.ProductSalesTable(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byName := map[string]ProductSalesRowDTO{}
	for _, row := range rows {
		byName[row.Nombre] = row
	}

	laptop := byName["Laptop"]
	require.Equal(t, int64(3), laptop.TotalVendidos)
	require.True(t, laptop.Ingresos.Equal(mustDecimal(t, "300.00")), "got %s", laptop.Ingresos)
	require.True(t, laptop.EstadoProducto)

	mouse := byName["Mouse"]
	require.Equal(t, int64(1), mouse.TotalVendidos)
	require.False(t, mouse.EstadoProducto, "out-of-stock products report as inactive")
}

func TestUserIndicators(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	rows, err := repo.UserIndicators(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "ana", rows[0].Username)
	require.Equal(t, int64(2), rows[0].TotalPedidos)
	require.True(t, rows[0].TotalGastado.Equal(mustDecimal(t, "265.00")), "got %s", rows[0].TotalGastado)
}

func TestDailySales(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	rows, err := repo.DailySales(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2026-08-01", rows[0].Fecha)
	require.True(t, rows[0].Total.Equal(mustDecimal(t, "225.00")), "got %s", rows[0].Total)
	require.Equal(t, "2026-08-02", rows[1].Fecha)
	require.True(t, rows[1].Total.Equal(mustDecimal(t, "140.00")), "got %s", rows[1].Total)
}

func TestPaymentMethods(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	rows, err := repo.PaymentMethods(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "tarjeta", rows[0].MetodoPago)
	require.Equal(t, int64(2), rows[0].TotalPedidos)
	require.Equal(t, "efectivo", rows[1].MetodoPago)
	require.Equal(t, int64(1), rows[1].TotalPedidos)
}

func TestTotalSales(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	total, err := repo.TotalSales(context.Background())
	require.NoError(t, err)
	require.True(t, total.Equal(mustDecimal(t, "365.00")), "got %s", total)
}

func TestTotalSalesEmpty(t *testing.T) {
	repo, _ := newDashboardRepo(t)

	total, err := repo.TotalSales(context.Background())
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestOrdersByStatus(t *testing.T) {
	repo, client := newDashboardRepo(t)
	seedSalesFixture(t, client)

	rows, err := repo.OrdersByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.False(t, rows[0].EstadoPedido)
	require.Equal(t, int64(2), rows[0].TotalPedidos)
	require.True(t, rows[1].EstadoPedido)
	require.Equal(t, int64(1), rows[1].TotalPedidos)
}

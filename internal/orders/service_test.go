package orders

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var ordersSchema = []string{
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
	`CREATE TABLE facturas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pedido_id INTEGER NOT NULL UNIQUE,
		numero TEXT NOT NULL UNIQUE,
		total NUMERIC NOT NULL,
		emitida_at DATETIME
	)`,
}

// mailRecorder captures outgoing mail instead of hitting SendGrid.
type mailRecorder struct {
	mu   sync.Mutex
	sent []string
}

func (m *mailRecorder) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, fmt.Sprintf("%s|%s|%s", to, subject, body))
	return nil
}

func newOrderService(t *testing.T) (Service, *db.Client, *mailRecorder) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range ordersSchema {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}

	recorder := &mailRecorder{}
	svc, err := NewService(ServiceParams{
		Repo:   NewRepository(client.DB()),
		Client: client,
		Mailer: recorder,
	})
	require.NoError(t, err)
	return svc, client, recorder
}

func seedProduct(t *testing.T, client *db.Client, nombre, precio string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Nombre:           nombre,
		Precio:           decimal.RequireFromString(precio),
		CantidadProducto: stock,
	}
	require.NoError(t, client.DB().Create(&product).Error)
	return product
}

func createOrder(t *testing.T, svc Service, userID int64, total string) OrderDTO {
	t.Helper()
	order, err := svc.Create(context.Background(), CreateOrderInput{
		UsuarioID:   userID,
		Cliente:     "Ana Gomez",
		Direccion:   "Calle 10 #4-21",
		MetodoPago:  "tarjeta",
		PrecioTotal: decimal.RequireFromString(total),
	})
	require.NoError(t, err)
	return order
}

func TestOrderLifecycle(t *testing.T) {
	svc, _, _ := newOrderService(t)
	ctx := context.Background()

	created := createOrder(t, svc, 7, "225.00")
	require.NotZero(t, created.ID)
	require.False(t, created.EstadoPedido, "new orders start pending")

	delivered, err := svc.Update(ctx, created.ID, UpdateOrderInput{
		Cliente:      created.Cliente,
		Direccion:    created.Direccion,
		MetodoPago:   created.MetodoPago,
		EstadoPedido: true,
		PrecioTotal:  created.PrecioTotal,
	})
	require.NoError(t, err)
	require.True(t, delivered.EstadoPedido)

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListPageWalksOrdersWithCursor(t *testing.T) {
	svc, client, _ := newOrderService(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		order := createOrder(t, svc, 7, "100.00")
		require.NoError(t, client.DB().
			Exec("UPDATE pedidos SET created_at = ? WHERE id = ?", base.Add(time.Duration(i)*time.Minute), order.ID).Error)
		ids = append(ids, order.ID)
	}

	first, err := svc.ListPage(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	require.Equal(t, ids[0], first.Items[0].ID)
	require.Equal(t, ids[1], first.Items[1].ID)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.ListPage(ctx, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	require.Equal(t, ids[2], second.Items[0].ID)
	require.Empty(t, second.NextCursor, "the last page carries no cursor")
}

func TestListPageRejectsMalformedCursor(t *testing.T) {
	svc, _, _ := newOrderService(t)

	_, err := svc.ListPage(context.Background(), pagination.Params{Cursor: "not-base64!"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestOrderCreateRejectsNegativeTotal(t *testing.T) {
	svc, _, _ := newOrderService(t)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		UsuarioID:   7,
		Cliente:     "Ana",
		Direccion:   "Calle 1",
		MetodoPago:  "tarjeta",
		PrecioTotal: decimal.RequireFromString("-1.00"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestFillItemsDecrementsStock(t *testing.T) {
	svc, client, _ := newOrderService(t)
	ctx := context.Background()

	laptop := seedProduct(t, client, "Laptop", "100.00", 5)
	mouse := seedProduct(t, client, "Mouse", "25.00", 10)
	order := createOrder(t, svc, 7, "225.00")

	items, err := svc.FillItems(ctx, []CreateOrderItemInput{
		{PedidoPpid: order.ID, ProductoPpid: laptop.ID, CantidadProductoCarrito: 2},
		{PedidoPpid: order.ID, ProductoPpid: mouse.ID, CantidadProductoCarrito: 1},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, order.ID, items[0].PedidoPpid)

	var reloaded models.Product
	require.NoError(t, client.DB().First(&reloaded, laptop.ID).Error)
	require.Equal(t, 3, reloaded.CantidadProducto)
}

func TestFillItemsInsufficientStockAbortsBatch(t *testing.T) {
	svc, client, _ := newOrderService(t)
	ctx := context.Background()

	laptop := seedProduct(t, client, "Laptop", "100.00", 5)
	scarce := seedProduct(t, client, "Monitor", "300.00", 1)
	order := createOrder(t, svc, 7, "500.00")

	_, err := svc.FillItems(ctx, []CreateOrderItemInput{
		{PedidoPpid: order.ID, ProductoPpid: laptop.ID, CantidadProductoCarrito: 1},
		{PedidoPpid: order.ID, ProductoPpid: scarce.ID, CantidadProductoCarrito: 3},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// First line rolls back with the failed one.
	var reloaded models.Product
	require.NoError(t, client.DB().First(&reloaded, laptop.ID).Error)
	require.Equal(t, 5, reloaded.CantidadProducto)

	var itemCount int64
	require.NoError(t, client.DB().Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Zero(t, itemCount)
}

func TestFillItemsUnknownOrder(t *testing.T) {
	svc, client, _ := newOrderService(t)

	laptop := seedProduct(t, client, "Laptop", "100.00", 5)
	_, err := svc.FillItems(context.Background(), []CreateOrderItemInput{
		{PedidoPpid: 404, ProductoPpid: laptop.ID, CantidadProductoCarrito: 1},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGenerateInvoiceIsIdempotent(t *testing.T) {
	svc, _, _ := newOrderService(t)
	ctx := context.Background()

	order := createOrder(t, svc, 7, "225.00")

	first, err := svc.GenerateInvoice(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("FAC-%06d", order.ID), first.Numero)
	require.True(t, first.Total.Equal(decimal.RequireFromString("225.00")))

	second, err := svc.GenerateInvoice(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "regenerating returns the existing factura")
}

func TestGenerateInvoiceFallsBackToItemsTotal(t *testing.T) {
	svc, client, _ := newOrderService(t)
	ctx := context.Background()

	laptop := seedProduct(t, client, "Laptop", "100.00", 5)
	order := createOrder(t, svc, 7, "0")

	_, err := svc.FillItems(ctx, []CreateOrderItemInput{
		{PedidoPpid: order.ID, ProductoPpid: laptop.ID, CantidadProductoCarrito: 2},
	})
	require.NoError(t, err)

	invoice, err := svc.GenerateInvoice(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, invoice.Total.Equal(decimal.RequireFromString("200.00")), "got %s", invoice.Total)
}

func TestSendCancelEmail(t *testing.T) {
	svc, _, recorder := newOrderService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendCancelEmail(ctx, "ana@example.com", "Su pedido fue cancelado"))
	require.Len(t, recorder.sent, 1)
	require.Contains(t, recorder.sent[0], "ana@example.com|Pedido cancelado")

	err := svc.SendCancelEmail(ctx, "", "mensaje")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type purchaseCalls struct {
	createOrder atomic.Int64
	fillItems   atomic.Int64
	emptyCart   atomic.Int64
	invoice     atomic.Int64
}

func newPurchaseFixture(t *testing.T, calls *purchaseCalls, failCreate bool) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/pedidos/", func(w http.ResponseWriter, r *http.Request) {
		calls.createOrder.Add(1)
		if failCreate {
			writeAPIError(t, w, http.StatusBadGateway, "DEPENDENCY_ERROR", "create order failed")
			return
		}
		writeData(t, w, http.StatusCreated, Order{ID: 33, UsuarioID: 7, PrecioTotal: decimal.RequireFromString("250.00")})
	})
	mux.HandleFunc("POST /api/llenarTablaProductosPedidos", func(w http.ResponseWriter, r *http.Request) {
		calls.fillItems.Add(1)
		writeData(t, w, http.StatusCreated, []OrderItem{{ID: 1, PedidoPpid: 33}})
	})
	mux.HandleFunc("DELETE /api/delete_all_userProducts/", func(w http.ResponseWriter, r *http.Request) {
		calls.emptyCart.Add(1)
		writeData(t, w, http.StatusOK, map[string]int64{"deleted": 2})
	})
	mux.HandleFunc("GET /api/generar_factura/", func(w http.ResponseWriter, r *http.Request) {
		calls.invoice.Add(1)
		writeData(t, w, http.StatusOK, Invoice{ID: 5, PedidoID: 33, Numero: "FAC-000033", Total: decimal.RequireFromString("250.00")})
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.Session().SetUserID(7))
	require.NoError(t, c.Session().SetTotal(decimal.RequireFromString("250.00")))
	return c
}

func purchaseLines() []*CartLine {
	return []*CartLine{
		{ID: 1, ProductID: 10, Nombre: "Laptop", Precio: decimal.RequireFromString("100.00"), Requested: 2, Available: 5},
		{ID: 2, ProductID: 11, Nombre: "Mouse", Precio: decimal.RequireFromString("50.00"), Requested: 1, Available: 1},
	}
}

func TestExecuteRunsAllFourStages(t *testing.T) {
	var calls purchaseCalls
	c := newPurchaseFixture(t, &calls, false)

	result, err := c.Execute(context.Background(), OrderForm{Cliente: "Ana", Direccion: "Calle 1", MetodoPago: "tarjeta"}, purchaseLines())
	require.NoError(t, err)

	require.Equal(t, int64(1), calls.createOrder.Load())
	require.Equal(t, int64(1), calls.fillItems.Load())
	require.Equal(t, int64(1), calls.emptyCart.Load())
	require.Equal(t, int64(1), calls.invoice.Load())

	require.Equal(t, int64(33), result.Order.ID)
	require.Equal(t, "FAC-000033", result.Invoice.Numero)

	require.Len(t, result.Stages, 4)
	for _, stage := range result.Stages {
		require.True(t, stage.OK, "stage %s must succeed", stage.Stage)
	}

	require.True(t, c.Session().Total().IsZero(), "session total resets once the cart is emptied")
}

func TestExecuteContinuesPastCreateFailure(t *testing.T) {
	var calls purchaseCalls
	c := newPurchaseFixture(t, &calls, true)

	result, err := c.Execute(context.Background(), OrderForm{Cliente: "Ana", Direccion: "Calle 1", MetodoPago: "tarjeta"}, purchaseLines())
	require.Error(t, err)

	// The remaining stages still run, matching the legacy storefront.
	require.Equal(t, int64(1), calls.createOrder.Load())
	require.Equal(t, int64(1), calls.fillItems.Load())
	require.Equal(t, int64(1), calls.emptyCart.Load())
	require.Equal(t, int64(1), calls.invoice.Load())

	require.Len(t, result.Stages, 4)
	require.False(t, result.Stages[0].OK)
	require.NotEmpty(t, result.Stages[0].Error)
}

func TestExecuteTransactional(t *testing.T) {
	var checkoutCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/checkout", func(w http.ResponseWriter, r *http.Request) {
		checkoutCalls.Add(1)
		writeData(t, w, http.StatusCreated, CheckoutResult{
			Order:   Order{ID: 44, UsuarioID: 7},
			Invoice: Invoice{ID: 6, PedidoID: 44, Numero: "FAC-000044"},
			Stages: []StageResult{
				{Stage: StageCreateOrder, OK: true},
				{Stage: StageFillItems, OK: true},
				{Stage: StageEmptyCart, OK: true},
				{Stage: StageGenerateInvoice, OK: true},
			},
		})
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.Session().SetUserID(7))
	require.NoError(t, c.Session().SetTotal(decimal.RequireFromString("99.00")))

	result, err := c.ExecuteTransactional(context.Background(), OrderForm{Cliente: "Ana", Direccion: "Calle 1", MetodoPago: "tarjeta"})
	require.NoError(t, err)
	require.Equal(t, int64(1), checkoutCalls.Load())
	require.Equal(t, int64(44), result.Order.ID)
	require.Len(t, result.Stages, 4)
	require.True(t, c.Session().Total().IsZero())
}

func TestExecuteTransactionalFailureKeepsTotal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(t, w, http.StatusConflict, "CONFLICT", "insufficient stock for product")
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.Session().SetUserID(7))
	require.NoError(t, c.Session().SetTotal(decimal.RequireFromString("99.00")))

	_, err := c.ExecuteTransactional(context.Background(), OrderForm{Cliente: "Ana", Direccion: "Calle 1", MetodoPago: "tarjeta"})
	require.Error(t, err)
	require.True(t, c.Session().Total().Equal(decimal.RequireFromString("99.00")))
}

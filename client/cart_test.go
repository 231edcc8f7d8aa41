package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T, patchStatus int, patchCalls *atomic.Int64) (*Client, *Cart) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search_users_products/", func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, http.StatusOK, []CartLineRecord{
			{ID: 1, UsuarioID: 7, ProductoID: 10, CantidadUserProducto: 2, Nombre: "Laptop", Precio: decimal.RequireFromString("100.00"), CantidadProducto: 5},
			{ID: 2, UsuarioID: 7, ProductoID: 11, CantidadUserProducto: 1, Nombre: "Mouse", Precio: decimal.RequireFromString("50.00"), CantidadProducto: 1},
		})
	})
	mux.HandleFunc("PATCH /api/users_products/{id}/", func(w http.ResponseWriter, r *http.Request) {
		if patchCalls != nil {
			patchCalls.Add(1)
		}
		if patchStatus >= 400 {
			writeAPIError(t, w, patchStatus, "CONFLICT", "quantity exceeds stock")
			return
		}
		writeData(t, w, http.StatusOK, CartLineRecord{})
	})

	c := newTestClient(t, mux)
	require.NoError(t, c.Session().SetUserID(7))

	cart := NewCart(c)
	require.NoError(t, cart.Load(context.Background()))
	return c, cart
}

func TestCartTotalTwoLines(t *testing.T) {
	_, cart := newCartFixture(t, http.StatusOK, nil)

	require.True(t, cart.Total().Equal(decimal.RequireFromString("250.00")), "got %s", cart.Total())
	require.Equal(t, "$250.00", cart.FormattedTotal())

	summary := cart.Summary()
	require.Contains(t, summary, "Laptop x2 = $200.00")
	require.Contains(t, summary, "Mouse x1 = $50.00")
	require.Contains(t, summary, "Total: $250.00")
	require.NotContains(t, summary, emptyCartPlaceholder)
}

func TestCartSummaryEmpty(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())
	cart := NewCart(c)
	require.Equal(t, emptyCartPlaceholder, cart.Summary())
}

func TestIncrementUpdatesTotalAndSession(t *testing.T) {
	var calls atomic.Int64
	c, cart := newCartFixture(t, http.StatusOK, &calls)

	laptop := cart.Lines()[0]
	require.NoError(t, cart.Increment(context.Background(), laptop))

	require.Equal(t, int64(1), calls.Load())
	require.Equal(t, 3, laptop.Requested)
	require.True(t, cart.Total().Equal(decimal.RequireFromString("350.00")), "got %s", cart.Total())
	require.True(t, c.Session().Total().Equal(decimal.RequireFromString("350.00")))
}

func TestIncrementNoOpAtStockCeiling(t *testing.T) {
	var calls atomic.Int64
	c, cart := newCartFixture(t, http.StatusOK, &calls)

	mouse := cart.Lines()[1] // requested 1 of 1 available
	require.NoError(t, cart.Increment(context.Background(), mouse))

	require.Zero(t, calls.Load(), "no request may leave the client")
	require.Equal(t, 1, mouse.Requested)
	require.True(t, c.Session().Total().IsZero(), "session total must stay untouched")
}

func TestIncrementNoOpWhenOutOfStock(t *testing.T) {
	var calls atomic.Int64
	_, cart := newCartFixture(t, http.StatusOK, &calls)

	line := &CartLine{ID: 3, Precio: decimal.RequireFromString("10.00"), Requested: 0, Available: 0}
	require.NoError(t, cart.Increment(context.Background(), line))
	require.Zero(t, calls.Load())
	require.Equal(t, 0, line.Requested)
}

func TestDecrementNoOpAtZero(t *testing.T) {
	var calls atomic.Int64
	_, cart := newCartFixture(t, http.StatusOK, &calls)

	line := &CartLine{ID: 3, Precio: decimal.RequireFromString("10.00"), Requested: 0, Available: 4}
	require.NoError(t, cart.Decrement(context.Background(), line))
	require.Zero(t, calls.Load())
	require.Equal(t, 0, line.Requested)
}

func TestDecrementUpdatesTotal(t *testing.T) {
	var calls atomic.Int64
	c, cart := newCartFixture(t, http.StatusOK, &calls)

	laptop := cart.Lines()[0]
	require.NoError(t, cart.Decrement(context.Background(), laptop))

	require.Equal(t, int64(1), calls.Load())
	require.Equal(t, 1, laptop.Requested)
	require.True(t, cart.Total().Equal(decimal.RequireFromString("150.00")), "got %s", cart.Total())
	require.True(t, c.Session().Total().Equal(decimal.RequireFromString("150.00")))
}

func TestFailedMutationLeavesStateUntouched(t *testing.T) {
	var calls atomic.Int64
	c, cart := newCartFixture(t, http.StatusConflict, &calls)

	laptop := cart.Lines()[0]
	err := cart.Increment(context.Background(), laptop)
	require.Error(t, err)

	require.Equal(t, int64(1), calls.Load())
	require.Equal(t, 2, laptop.Requested, "quantity must not change on failure")
	require.True(t, cart.Total().Equal(decimal.RequireFromString("250.00")))
	require.True(t, c.Session().Total().IsZero(), "session total must not change on failure")
	require.False(t, laptop.Busy(), "busy flag must clear after the request")
}

func TestBusyLineIgnoresOverlappingMutation(t *testing.T) {
	var calls atomic.Int64
	_, cart := newCartFixture(t, http.StatusOK, &calls)

	laptop := cart.Lines()[0]
	laptop.busy.Store(true)

	require.NoError(t, cart.Increment(context.Background(), laptop))
	require.Zero(t, calls.Load())
	require.Equal(t, 2, laptop.Requested)
	laptop.busy.Store(false)
}

func TestSequentialMutationsSerializeTotals(t *testing.T) {
	var calls atomic.Int64
	c, cart := newCartFixture(t, http.StatusOK, &calls)

	laptop := cart.Lines()[0]
	require.NoError(t, cart.Increment(context.Background(), laptop))
	require.NoError(t, cart.Increment(context.Background(), laptop))
	require.NoError(t, cart.Decrement(context.Background(), laptop))

	require.Equal(t, int64(3), calls.Load())
	require.Equal(t, 3, laptop.Requested)
	require.True(t, c.Session().Total().Equal(decimal.RequireFromString("350.00")),
		"session reflects the last committed mutation, got %s", c.Session().Total())
}

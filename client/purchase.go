package client

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Stage names for the purchase flow, shared by both execution paths.
const (
	StageCreateOrder     = "create_order"
	StageFillItems       = "fill_items"
	StageEmptyCart       = "empty_cart"
	StageGenerateInvoice = "generate_invoice"
)

// PurchaseResult is what a purchase run produced, complete or not.
type PurchaseResult struct {
	Order   Order
	Invoice Invoice
	Stages  []StageResult
}

// Execute runs the legacy four-step purchase: create the pedido, fill
// pedidos_productos, empty the cart, generate the factura. Every step runs
// regardless of earlier failures, the way the original storefront behaved; the
// combined error reports everything that went wrong.
func (c *Client) Execute(ctx context.Context, form OrderForm, lines []*CartLine) (PurchaseResult, error) {
	userID := c.session.UserID()

	total := decimal.Zero
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Requested <= 0 {
			continue
		}
		total = total.Add(line.Subtotal())
		items = append(items, OrderItem{
			ProductoPpid:            line.ProductID,
			CantidadProductoCarrito: line.Requested,
		})
	}

	var (
		result PurchaseResult
		errs   error
	)

	order, err := c.CreateOrder(ctx, userID, form, total)
	result.Stages = append(result.Stages, stageResult(StageCreateOrder, err))
	errs = multierr.Append(errs, err)
	result.Order = order

	for i := range items {
		items[i].PedidoPpid = order.ID
	}
	_, err = c.FillOrderItems(ctx, items)
	result.Stages = append(result.Stages, stageResult(StageFillItems, err))
	errs = multierr.Append(errs, err)

	err = c.EmptyCart(ctx, userID)
	result.Stages = append(result.Stages, stageResult(StageEmptyCart, err))
	errs = multierr.Append(errs, err)
	if err == nil {
		errs = multierr.Append(errs, c.session.SetTotal(decimal.Zero))
	}

	invoice, err := c.GenerateInvoice(ctx, order.ID)
	result.Stages = append(result.Stages, stageResult(StageGenerateInvoice, err))
	errs = multierr.Append(errs, err)
	result.Invoice = invoice

	return result, errs
}

// ExecuteTransactional runs the purchase through POST /api/checkout, where the
// server commits all four stages or none of them.
func (c *Client) ExecuteTransactional(ctx context.Context, form OrderForm) (PurchaseResult, error) {
	body := map[string]any{
		"usuario_id":  c.session.UserID(),
		"cliente":     form.Cliente,
		"direccion":   form.Direccion,
		"metodo_pago": form.MetodoPago,
	}

	var out CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/api/checkout", nil, body, &out, withAuth); err != nil {
		return PurchaseResult{}, err
	}

	if err := c.session.SetTotal(decimal.Zero); err != nil {
		return PurchaseResult{}, err
	}

	return PurchaseResult{
		Order:   out.Order,
		Invoice: out.Invoice,
		Stages:  out.Stages,
	}, nil
}

func stageResult(stage string, err error) StageResult {
	if err != nil {
		return StageResult{Stage: stage, Error: err.Error()}
	}
	return StageResult{Stage: stage, OK: true}
}

package checkout

import "github.com/classmart/classmart-backend/internal/orders"

// Stage names for the checkout pipeline.
const (
	StageCreateOrder     = "create_order"
	StageFillItems       = "fill_items"
	StageEmptyCart       = "empty_cart"
	StageGenerateInvoice = "generate_invoice"
)

// CheckoutInput is the payload for POST /api/checkout.
type CheckoutInput struct {
	UsuarioID  int64  `json:"usuario_id" validate:"required,min=1"`
	Cliente    string `json:"cliente" validate:"required,max=200"`
	Direccion  string `json:"direccion" validate:"required,max=300"`
	MetodoPago string `json:"metodo_pago" validate:"required,max=50"`
}

// StageResult reports the outcome of one checkout stage.
type StageResult struct {
	Stage string `json:"stage"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// CheckoutDTO is returned when the purchase commits.
type CheckoutDTO struct {
	Order   orders.OrderDTO   `json:"order"`
	Invoice orders.InvoiceDTO `json:"invoice"`
	Stages  []StageResult     `json:"stages"`
}

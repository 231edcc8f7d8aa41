package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineDTO is a cart row joined with the product it references. The quantity
// field keeps its legacy wire name cantidad_user_producto; cantidad_producto
// is the product's current stock.
type LineDTO struct {
	ID                   int64           `json:"id"`
	UsuarioID            int64           `json:"usuario_id"`
	ProductoID           int64           `json:"producto_id"`
	CantidadUserProducto int             `json:"cantidad_user_producto"`
	Nombre               string          `json:"nombre"`
	Precio               decimal.Decimal `json:"precio"`
	CantidadProducto     int             `json:"cantidad_producto"`
	FotoProducto         *string         `json:"foto_producto,omitempty"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// AddLineInput inserts or replaces a product in the user's cart.
type AddLineInput struct {
	UsuarioID            int64 `json:"usuario_id" validate:"required,min=1"`
	ProductoID           int64 `json:"producto_id" validate:"required,min=1"`
	CantidadUserProducto int   `json:"cantidad_user_producto" validate:"gte=0"`
}

// PatchQuantityInput carries the new requested quantity. The legacy clients
// send it under cantidad_producto even though it updates the cart line.
type PatchQuantityInput struct {
	CantidadProducto int `json:"cantidad_producto" validate:"gte=0"`
}

// TotalDTO is the serialized cart total for a user.
type TotalDTO struct {
	UsuarioID int64           `json:"usuario_id"`
	Total     decimal.Decimal `json:"total"`
}

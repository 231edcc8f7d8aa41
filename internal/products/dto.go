package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDTO is the wire representation of a product. The Spanish field names
// are the contract the storefront and admin clients consume.
type ProductDTO struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Precio           decimal.Decimal `json:"precio"`
	CantidadProducto int             `json:"cantidad_producto"`
	FotoProducto     *string         `json:"foto_producto,omitempty"`
	CategoriaID      *int64          `json:"categoria_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CreateProductInput carries the fields accepted on create. The photo arrives
// as a multipart file and is handled separately from the JSON-ish fields.
type CreateProductInput struct {
	Nombre           string          `json:"nombre" validate:"required,max=200"`
	Descripcion      *string         `json:"descripcion" validate:"omitempty,max=2000"`
	Precio           decimal.Decimal `json:"precio" validate:"required"`
	CantidadProducto int             `json:"cantidad_producto" validate:"gte=0"`
	CategoriaID      *int64          `json:"categoria_id"`
	Photo            *PhotoUpload    `json:"-"`
}

// UpdateProductInput mirrors CreateProductInput for full updates.
type UpdateProductInput struct {
	Nombre           string          `json:"nombre" validate:"required,max=200"`
	Descripcion      *string         `json:"descripcion" validate:"omitempty,max=2000"`
	Precio           decimal.Decimal `json:"precio" validate:"required"`
	CantidadProducto int             `json:"cantidad_producto" validate:"gte=0"`
	CategoriaID      *int64          `json:"categoria_id"`
	Photo            *PhotoUpload    `json:"-"`
}

// PatchStockInput carries the single writable field of a partial update.
type PatchStockInput struct {
	CantidadProducto int `json:"cantidad_producto" validate:"gte=0"`
}

// PhotoUpload is an in-memory uploaded file.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a storefront listing. CantidadProducto is the available stock and
// acts as the ceiling for every cart line that references the product.
type Product struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre           string          `gorm:"column:nombre;not null"`
	Descripcion      *string         `gorm:"column:descripcion"`
	Precio           decimal.Decimal `gorm:"column:precio;type:numeric(12,2);not null"`
	CantidadProducto int             `gorm:"column:cantidad_producto;not null;default:0"`
	FotoProducto     *string         `gorm:"column:foto_producto"`
	CategoriaID      *int64          `gorm:"column:categoria_id"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "productos" }

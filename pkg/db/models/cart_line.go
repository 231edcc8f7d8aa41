package models

import "time"

// CartLine holds one product inside a user's cart. The requested quantity is
// bounded by the referenced product's stock (0 <= cantidad <= stock).
type CartLine struct {
	ID                   int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UsuarioID            int64     `gorm:"column:usuario_id;not null;index:users_products_usuario_idx;uniqueIndex:users_products_usuario_producto_key"`
	ProductoID           int64     `gorm:"column:producto_id;not null;uniqueIndex:users_products_usuario_producto_key"`
	CantidadUserProducto int       `gorm:"column:cantidad_user_producto;not null;default:0"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartLine) TableName() string { return "users_products" }

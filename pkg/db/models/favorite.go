package models

import "time"

// Favorite links a user to a bookmarked product.
type Favorite struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UsuarioID  int64     `gorm:"column:usuario_id;not null;index:favoritos_usuario_idx;uniqueIndex:favoritos_usuario_producto_key"`
	ProductoID int64     `gorm:"column:producto_id;not null;uniqueIndex:favoritos_usuario_producto_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Favorite) TableName() string { return "favoritos" }

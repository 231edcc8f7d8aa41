package models

import "time"

// OrderItem carries one product line of an order. The column names follow the
// historical pedidos_productos contract (pedido_ppid / producto_ppid).
type OrderItem struct {
	ID                      int64     `gorm:"column:id;primaryKey;autoIncrement"`
	PedidoID                int64     `gorm:"column:pedido_ppid;not null;index:pedidos_productos_pedido_idx"`
	ProductoID              int64     `gorm:"column:producto_ppid;not null"`
	CantidadProductoCarrito int       `gorm:"column:cantidad_producto_carrito;not null"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string { return "pedidos_productos" }

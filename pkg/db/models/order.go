package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a persisted purchase (pedido). EstadoPedido flips to true once the
// order has been delivered; cancellation deletes the record outright.
type Order struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	UsuarioID    int64           `gorm:"column:usuario_id;not null;index:pedidos_usuario_idx"`
	Cliente      string          `gorm:"column:cliente;not null"`
	Direccion    string          `gorm:"column:direccion;not null"`
	MetodoPago   string          `gorm:"column:metodo_pago;not null"`
	EstadoPedido bool            `gorm:"column:estado_pedido;not null;default:false"`
	FechaPedido  time.Time       `gorm:"column:fecha_pedido;autoCreateTime"`
	PrecioTotal  decimal.Decimal `gorm:"column:precio_total;type:numeric(12,2);not null;default:0"`
	Items        []OrderItem     `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "pedidos" }

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the billing artifact generated for a completed order.
type Invoice struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	PedidoID  int64           `gorm:"column:pedido_id;not null;uniqueIndex:facturas_pedido_key"`
	Numero    string          `gorm:"column:numero;not null;uniqueIndex:facturas_numero_key"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	EmitidaAt time.Time       `gorm:"column:emitida_at;autoCreateTime"`
}

func (Invoice) TableName() string { return "facturas" }

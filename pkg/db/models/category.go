package models

import "time"

// Category is a product grouping managed from the admin side.
type Category struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Nombre      string    `gorm:"column:nombre;not null;uniqueIndex:categorias_nombre_key"`
	Descripcion *string   `gorm:"column:descripcion"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categorias" }

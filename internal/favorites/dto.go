package favorites

import "time"

// FavoriteDTO is the wire representation of a favorite row.
type FavoriteDTO struct {
	ID         int64     `json:"id"`
	UsuarioID  int64     `json:"usuario_id"`
	ProductoID int64     `json:"producto_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateFavoriteInput marks a product as favorite for a user.
type CreateFavoriteInput struct {
	UsuarioID  int64 `json:"usuario_id" validate:"required,min=1"`
	ProductoID int64 `json:"producto_id" validate:"required,min=1"`
}

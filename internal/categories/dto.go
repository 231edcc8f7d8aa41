package categories

import "time"

// CategoryDTO is the wire representation of a category. Field names keep the
// Spanish contract the browser clients already depend on.
type CategoryDTO struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCategoryInput carries the fields accepted on create.
type CreateCategoryInput struct {
	Nombre      string  `json:"nombre" validate:"required,max=120"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=500"`
}

// UpdateCategoryInput carries the fields accepted on update.
type UpdateCategoryInput struct {
	Nombre      string  `json:"nombre" validate:"required,max=120"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=500"`
}

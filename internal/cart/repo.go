package cart

import (
	"context"

	"github.com/classmart/classmart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, line *models.CartLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.WithContext(ctx).First(&line, id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *Repository) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*models.CartLine, error) {
	var line models.CartLine
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND producto_id = ?", userID, productID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// ListByUser returns the user's cart lines joined with product data.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]LineDTO, error) {
	var dtos []LineDTO
	err := r.db.WithContext(ctx).
		Table("users_products up").
		Select(`up.id, up.usuario_id, up.producto_id, up.cantidad_user_producto, up.updated_at,
p.nombre, p.precio, p.cantidad_producto, p.foto_producto`).
		Joins("JOIN productos p ON p.id = up.producto_id").
		Where("up.usuario_id = ?", userID).
		Order("up.id ASC").
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}
	if dtos == nil {
		dtos = []LineDTO{}
	}
	return dtos, nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, id int64, cantidad int) error {
	result := r.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("id = ?", id).
		Update("cantidad_user_producto", cantidad)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.CartLine{}, id).Error
}

// DeleteAllForUser empties the user's cart and reports how many lines went away.
func (r *Repository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Delete(&models.CartLine{})
	return result.RowsAffected, result.Error
}

// TotalForUser sums precio * cantidad_user_producto across the user's cart.
func (r *Repository) TotalForUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Table("users_products up").
		Joins("JOIN productos p ON p.id = up.producto_id").
		Where("up.usuario_id = ?", userID).
		Select("CAST(COALESCE(SUM(p.precio * up.cantidad_user_producto), 0) AS TEXT)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil || *raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

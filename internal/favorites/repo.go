package favorites

import (
	"context"

	"github.com/classmart/classmart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates favorite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := r.db.WithContext(ctx).First(&favorite, id).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Favorite, error) {
	var records []models.Favorite
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	var records []models.Favorite
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Favorite{}, id).Error
}

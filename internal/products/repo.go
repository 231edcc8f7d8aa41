package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/classmart/classmart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// filterableColumns maps the public filter criteria onto SQL columns. Anything
// outside this map is rejected before it reaches the query builder.
var filterableColumns = map[string]string{
	"id":           "id",
	"nombre":       "nombre",
	"descripcion":  "descripcion",
	"precio":       "precio",
	"categoria_id": "categoria_id",
}

var textColumns = map[string]bool{
	"nombre":      true,
	"descripcion": true,
}

// Repository encapsulates product persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var records []models.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Filter applies a whitelisted criteria/value pair. Text columns match with a
// case-insensitive substring, everything else with equality.
func (r *Repository) Filter(ctx context.Context, criteria, value string) ([]models.Product, error) {
	column, ok := filterableColumns[criteria]
	if !ok {
		return nil, fmt.Errorf("unsupported filter criteria %q", criteria)
	}

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if textColumns[column] {
		query = query.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), "%"+strings.ToLower(value)+"%")
	} else {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var records []models.Product
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateStock writes only the stock column.
func (r *Repository) UpdateStock(ctx context.Context, id int64, cantidad int) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("cantidad_producto", cantidad)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

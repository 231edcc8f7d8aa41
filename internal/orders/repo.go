package orders

import (
	"context"

	"github.com/classmart/classmart-backend/pkg/db/models"
	"github.com/classmart/classmart-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository encapsulates order, order item, and invoice persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// DB exposes the underlying handle for transaction orchestration.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Order, error) {
	var records []models.Order
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListPage returns a keyset page of orders ordered by (created_at, id).
func (r *Repository) ListPage(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Limit(limit)
	if cursor != nil {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	var records []models.Order
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete removes the order; pedidos_productos rows cascade away with it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Order{}, id).Error
}

func (r *Repository) CreateItem(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *Repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *Repository) FindItemByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) ListItems(ctx context.Context) ([]models.OrderItem, error) {
	var records []models.OrderItem
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) ListItemsByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var records []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("pedido_ppid = ?", orderID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DecrementStock atomically subtracts quantity from a product's stock,
// refusing to go below zero.
func (r *Repository) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND cantidad_producto >= ?", productID, quantity).
		Update("cantidad_producto", gorm.Expr("cantidad_producto - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *Repository) FindInvoiceByOrder(ctx context.Context, orderID int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", orderID).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ItemsTotal sums precio * cantidad_producto_carrito for an order's items.
func (r *Repository) ItemsTotal(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var raw *string
	err := r.db.WithContext(ctx).
		Table("pedidos_productos pp").
		Joins("JOIN productos p ON p.id = pp.producto_ppid").
		Where("pp.pedido_ppid = ?", orderID).
		Select("CAST(COALESCE(SUM(p.precio * pp.cantidad_producto_carrito), 0) AS TEXT)").
		Scan(&raw).Error
	if err != nil {
		return decimal.Zero, err
	}
	if raw == nil || *raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}

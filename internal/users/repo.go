package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/classmart/classmart-backend/pkg/db/models"
	"gorm.io/gorm"
)

var searchableColumns = map[string]string{
	"id":       "id",
	"username": "username",
	"email":    "email",
	"is_staff": "is_staff",
}

var searchTextColumns = map[string]bool{
	"username": true,
	"email":    true,
}

// Repository encapsulates user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var records []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Search applies a whitelisted criteria/value pair against the users table.
func (r *Repository) Search(ctx context.Context, criteria, value string) ([]models.User, error) {
	column, ok := searchableColumns[criteria]
	if !ok {
		return nil, fmt.Errorf("unsupported search criteria %q", criteria)
	}

	query := r.db.WithContext(ctx).Model(&models.User{})
	if searchTextColumns[column] {
		query = query.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), "%"+strings.ToLower(value)+"%")
	} else {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var records []models.User
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

package cart

import (
	"context"
	"errors"
	"time"

	"github.com/classmart/classmart-backend/internal/products"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
	"gorm.io/gorm"
)

const totalMirrorTTL = 24 * time.Hour

type totalMirror interface {
	StoreCartTotal(ctx context.Context, userID int64, total string, ttl time.Duration) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *products.Repository
	TotalMirror totalMirror
	Logger      *logger.Logger
}

// Service exposes the cart rules: a line's quantity is always within
// [0, stock] for the product it references.
type Service interface {
	ListByUser(ctx context.Context, userID int64) ([]LineDTO, error)
	AddLine(ctx context.Context, input AddLineInput) (LineDTO, error)
	SetQuantity(ctx context.Context, lineID int64, input PatchQuantityInput) (LineDTO, error)
	RemoveLine(ctx context.Context, lineID int64) error
	Empty(ctx context.Context, userID int64) (int64, error)
	Total(ctx context.Context, userID int64) (TotalDTO, error)
}

type service struct {
	repo        *Repository
	productRepo *products.Repository
	mirror      totalMirror
	logg        *logger.Logger
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		repo:        params.Repo,
		productRepo: params.ProductRepo,
		mirror:      params.TotalMirror,
		logg:        params.Logger,
	}, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]LineDTO, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	return lines, nil
}

// AddLine inserts a cart line after clamping the quantity to available stock.
func (s *service) AddLine(ctx context.Context, input AddLineInput) (LineDTO, error) {
	product, err := s.loadProduct(ctx, input.ProductoID)
	if err != nil {
		return LineDTO{}, err
	}
	if input.CantidadUserProducto > product.CantidadProducto {
		return LineDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"cantidad_producto": product.CantidadProducto})
	}

	line := models.CartLine{
		UsuarioID:            input.UsuarioID,
		ProductoID:           input.ProductoID,
		CantidadUserProducto: input.CantidadUserProducto,
	}
	if err := s.repo.Create(ctx, &line); err != nil {
		if db.IsUniqueViolation(err, "users_products_usuario_producto_key") {
			return LineDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product is already in the cart")
		}
		return LineDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart line")
	}

	s.refreshTotalMirror(ctx, input.UsuarioID)
	return s.lineDTO(line, product), nil
}

// SetQuantity writes the requested quantity, rejecting values outside
// [0, stock]. The bounds checks mirror what the storefront enforces before
// calling, so an out-of-range write indicates a stale client.
func (s *service) SetQuantity(ctx context.Context, lineID int64, input PatchQuantityInput) (LineDTO, error) {
	line, err := s.loadLine(ctx, lineID)
	if err != nil {
		return LineDTO{}, err
	}
	product, err := s.loadProduct(ctx, line.ProductoID)
	if err != nil {
		return LineDTO{}, err
	}

	if input.CantidadProducto < 0 {
		return LineDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.CantidadProducto > product.CantidadProducto {
		return LineDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "requested quantity exceeds available stock").
			WithDetails(map[string]any{"cantidad_producto": product.CantidadProducto})
	}

	if err := s.repo.UpdateQuantity(ctx, lineID, input.CantidadProducto); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LineDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart line not found")
		}
		return LineDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quantity")
	}
	line.CantidadUserProducto = input.CantidadProducto

	s.refreshTotalMirror(ctx, line.UsuarioID)
	return s.lineDTO(*line, product), nil
}

func (s *service) RemoveLine(ctx context.Context, lineID int64) error {
	line, err := s.loadLine(ctx, lineID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, lineID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
	}
	s.refreshTotalMirror(ctx, line.UsuarioID)
	return nil
}

// Empty removes every line for the user. Emptying an empty cart succeeds.
func (s *service) Empty(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	removed, err := s.repo.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "empty cart")
	}
	s.refreshTotalMirror(ctx, userID)
	return removed, nil
}

func (s *service) Total(ctx context.Context, userID int64) (TotalDTO, error) {
	if userID <= 0 {
		return TotalDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	total, err := s.repo.TotalForUser(ctx, userID)
	if err != nil {
		return TotalDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute total")
	}
	return TotalDTO{UsuarioID: userID, Total: total}, nil
}

func (s *service) loadLine(ctx context.Context, lineID int64) (*models.CartLine, error) {
	line, err := s.repo.FindByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}
	return line, nil
}

func (s *service) loadProduct(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// refreshTotalMirror keeps the Redis copy of the cart total in sync after a
// mutation. Failures only degrade the cached value, so they are logged and
// swallowed.
func (s *service) refreshTotalMirror(ctx context.Context, userID int64) {
	if s.mirror == nil {
		return
	}
	total, err := s.repo.TotalForUser(ctx, userID)
	if err == nil {
		err = s.mirror.StoreCartTotal(ctx, userID, total.StringFixed(2), totalMirrorTTL)
	}
	if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "user_id", userID), "cart total mirror refresh failed")
	}
}

func (s *service) lineDTO(line models.CartLine, product *models.Product) LineDTO {
	return LineDTO{
		ID:                   line.ID,
		UsuarioID:            line.UsuarioID,
		ProductoID:           line.ProductoID,
		CantidadUserProducto: line.CantidadUserProducto,
		Nombre:               product.Nombre,
		Precio:               product.Precio,
		CantidadProducto:     product.CantidadProducto,
		FotoProducto:         product.FotoProducto,
		UpdatedAt:            line.UpdatedAt,
	}
}

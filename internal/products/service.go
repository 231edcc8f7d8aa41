package products

import (
	"context"
	"errors"

	"github.com/classmart/classmart-backend/internal/media"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the product service.
type ServiceParams struct {
	Repo  *Repository
	Media *media.Store
}

// Service exposes business rules for product management.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (ProductDTO, error)
	Get(ctx context.Context, id int64) (ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
	Filter(ctx context.Context, criteria, value string) ([]ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (ProductDTO, error)
	PatchStock(ctx context.Context, id int64, input PatchStockInput) (ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  *Repository
	media *media.Store
}

// NewService builds a product service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Media == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "media store is required")
	}
	return &service{repo: params.Repo, media: params.Media}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (ProductDTO, error) {
	if input.Precio.IsNegative() {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "precio must not be negative")
	}

	product := models.Product{
		Nombre:           input.Nombre,
		Descripcion:      input.Descripcion,
		Precio:           input.Precio,
		CantidadProducto: input.CantidadProducto,
		CategoriaID:      input.CategoriaID,
	}

	if input.Photo != nil {
		url, err := s.media.SaveProductPhoto(input.Photo.Filename, input.Photo.Data)
		if err != nil {
			return ProductDTO{}, err
		}
		product.FotoProducto = &url
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toDTO(product), nil
}

func (s *service) Get(ctx context.Context, id int64) (ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}
	return toDTO(*product), nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(records), nil
}

func (s *service) Filter(ctx context.Context, criteria, value string) ([]ProductDTO, error) {
	if criteria == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "criteria is required")
	}
	records, err := s.repo.Filter(ctx, criteria, value)
	if err != nil {
		if _, ok := filterableColumns[criteria]; !ok {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported filter criteria")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "filter products")
	}
	return toDTOs(records), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (ProductDTO, error) {
	if input.Precio.IsNegative() {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "precio must not be negative")
	}

	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}

	product.Nombre = input.Nombre
	product.Descripcion = input.Descripcion
	product.Precio = input.Precio
	product.CantidadProducto = input.CantidadProducto
	product.CategoriaID = input.CategoriaID

	if input.Photo != nil {
		url, err := s.media.SaveProductPhoto(input.Photo.Filename, input.Photo.Data)
		if err != nil {
			return ProductDTO{}, err
		}
		if product.FotoProducto != nil {
			// old photo is best-effort cleanup
			_ = s.media.Remove(*product.FotoProducto)
		}
		product.FotoProducto = &url
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toDTO(*product), nil
}

// PatchStock updates only cantidad_producto, the stock counter the checkout
// flow decrements after a purchase.
func (s *service) PatchStock(ctx context.Context, id int64, input PatchStockInput) (ProductDTO, error) {
	if input.CantidadProducto < 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cantidad_producto must not be negative")
	}
	if err := s.repo.UpdateStock(ctx, id, input.CantidadProducto); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if product.FotoProducto != nil {
		_ = s.media.Remove(*product.FotoProducto)
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func toDTO(product models.Product) ProductDTO {
	return ProductDTO{
		ID:               product.ID,
		Nombre:           product.Nombre,
		Descripcion:      product.Descripcion,
		Precio:           product.Precio,
		CantidadProducto: product.CantidadProducto,
		FotoProducto:     product.FotoProducto,
		CategoriaID:      product.CategoriaID,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

func toDTOs(records []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record))
	}
	return dtos
}

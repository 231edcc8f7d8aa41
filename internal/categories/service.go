package categories

import (
	"context"
	"errors"

	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the category service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes business rules for category management.
type Service interface {
	Create(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error)
	Get(ctx context.Context, id int64) (CategoryDTO, error)
	List(ctx context.Context) ([]CategoryDTO, error)
	Update(ctx context.Context, id int64, input UpdateCategoryInput) (CategoryDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo *Repository
}

// NewService builds a category service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (CategoryDTO, error) {
	category := models.Category{
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		if db.IsUniqueViolation(err, "categorias_nombre_key") {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category name already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return toDTO(category), nil
}

func (s *service) Get(ctx context.Context, id int64) (CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return toDTO(*category), nil
}

// List returns all categories; an empty catalog yields an empty slice, not nil.
func (s *service) List(ctx context.Context) ([]CategoryDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateCategoryInput) (CategoryDTO, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	category.Nombre = input.Nombre
	category.Descripcion = input.Descripcion
	if err := s.repo.Update(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "categorias_nombre_key") {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category name already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return toDTO(*category), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func toDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Nombre:      category.Nombre,
		Descripcion: category.Descripcion,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

package favorites

import (
	"context"
	"errors"

	"github.com/classmart/classmart-backend/internal/products"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *products.Repository
}

// Service exposes favorite bookkeeping. Toggling is driven by the clients:
// they create when no row exists and delete by id when one does.
type Service interface {
	List(ctx context.Context, userID int64) ([]FavoriteDTO, error)
	Create(ctx context.Context, input CreateFavoriteInput) (FavoriteDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo        *Repository
	productRepo *products.Repository
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{repo: params.Repo, productRepo: params.ProductRepo}, nil
}

// List returns every favorite, or only one user's rows when userID > 0.
func (s *service) List(ctx context.Context, userID int64) ([]FavoriteDTO, error) {
	var (
		records []models.Favorite
		err     error
	)
	if userID > 0 {
		records, err = s.repo.ListByUser(ctx, userID)
	} else {
		records, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}

	dtos := make([]FavoriteDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, input CreateFavoriteInput) (FavoriteDTO, error) {
	if _, err := s.productRepo.FindByID(ctx, input.ProductoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	favorite := models.Favorite{
		UsuarioID:  input.UsuarioID,
		ProductoID: input.ProductoID,
	}
	if err := s.repo.Create(ctx, &favorite); err != nil {
		if db.IsUniqueViolation(err, "favoritos_usuario_producto_key") {
			return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product is already a favorite")
		}
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create favorite")
	}
	return toDTO(favorite), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "favorite not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorite")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete favorite")
	}
	return nil
}

func toDTO(favorite models.Favorite) FavoriteDTO {
	return FavoriteDTO{
		ID:         favorite.ID,
		UsuarioID:  favorite.UsuarioID,
		ProductoID: favorite.ProductoID,
		CreatedAt:  favorite.CreatedAt,
	}
}

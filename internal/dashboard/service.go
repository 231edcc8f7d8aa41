package dashboard

import (
	"context"

	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
)

// topProductsLimit caps the best-sellers chart payload.
const topProductsLimit = 5

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes the admin dashboard aggregates.
type Service interface {
	TopSellingProducts(ctx context.Context) ([]TopProductDTO, error)
	ProductSalesTable(ctx context.Context) ([]ProductSalesRowDTO, error)
	UserIndicators(ctx context.Context) ([]UserIndicatorDTO, error)
	DailySales(ctx context.Context) ([]DailySalesDTO, error)
	PaymentMethods(ctx context.Context) ([]PaymentMethodDTO, error)
	TotalSales(ctx context.Context) (TotalSalesDTO, error)
	OrdersByStatus(ctx context.Context) ([]OrderStatusDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a dashboard service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dashboard repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) TopSellingProducts(ctx context.Context) ([]TopProductDTO, error) {
	rows, err := s.repo.TopSellingProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query top selling products")
	}
	return rows, nil
}

func (s *service) ProductSalesTable(ctx context.Context) ([]ProductSalesRowDTO, error) {
	rows, err := s.repo.ProductSalesTable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query product sales table")
	}
	return rows, nil
}

func (s *service) UserIndicators(ctx context.Context) ([]UserIndicatorDTO, error) {
	rows, err := s.repo.UserIndicators(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query user indicators")
	}
	return rows, nil
}

func (s *service) DailySales(ctx context.Context) ([]DailySalesDTO, error) {
	rows, err := s.repo.DailySales(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query daily sales")
	}
	return rows, nil
}

func (s *service) PaymentMethods(ctx context.Context) ([]PaymentMethodDTO, error) {
	rows, err := s.repo.PaymentMethods(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query payment methods")
	}
	return rows, nil
}

func (s *service) TotalSales(ctx context.Context) (TotalSalesDTO, error) {
	total, err := s.repo.TotalSales(ctx)
	if err != nil {
		return TotalSalesDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query total sales")
	}
	return TotalSalesDTO{ValorTotal: total}, nil
}

func (s *service) OrdersByStatus(ctx context.Context) ([]OrderStatusDTO, error) {
	rows, err := s.repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query orders by status")
	}
	return rows, nil
}

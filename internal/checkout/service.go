package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/classmart/classmart-backend/internal/cart"
	"github.com/classmart/classmart-backend/internal/orders"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
	"github.com/classmart/classmart-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	OrderRepo *orders.Repository
	CartRepo  *cart.Repository
	Client    *db.Client
	Metrics   *metrics.CheckoutMetrics
	Logger    *logger.Logger
}

// Service runs the purchase pipeline atomically: create the order, move the
// cart lines into pedidos_productos while decrementing stock, empty the cart,
// and emit the invoice. Any stage failure rolls the whole purchase back.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (CheckoutDTO, error)
}

type service struct {
	orderRepo *orders.Repository
	cartRepo  *cart.Repository
	client    *db.Client
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		orderRepo: params.OrderRepo,
		cartRepo:  params.CartRepo,
		client:    params.Client,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

func (s *service) Checkout(ctx context.Context, input CheckoutInput) (CheckoutDTO, error) {
	lines, err := s.cartRepo.ListByUser(ctx, input.UsuarioID)
	if err != nil {
		return CheckoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(lines) == 0 {
		return CheckoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var (
		out    CheckoutDTO
		stages []StageResult
	)

	txErr := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		order := models.Order{
			UsuarioID:  input.UsuarioID,
			Cliente:    input.Cliente,
			Direccion:  input.Direccion,
			MetodoPago: input.MetodoPago,
		}
		if err := s.runStage(ctx, &stages, StageCreateOrder, func() error {
			return orderRepo.Create(ctx, &order)
		}); err != nil {
			return err
		}

		total := order.PrecioTotal
		if err := s.runStage(ctx, &stages, StageFillItems, func() error {
			items := make([]models.OrderItem, 0, len(lines))
			for _, line := range lines {
				if line.CantidadUserProducto <= 0 {
					continue
				}
				if err := orderRepo.DecrementStock(ctx, line.ProductoID, line.CantidadUserProducto); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product").
							WithDetails(map[string]any{"producto_id": line.ProductoID})
					}
					return err
				}
				items = append(items, models.OrderItem{
					PedidoID:                order.ID,
					ProductoID:              line.ProductoID,
					CantidadProductoCarrito: line.CantidadUserProducto,
				})
				total = total.Add(line.Precio.Mul(decimalFromInt(line.CantidadUserProducto)))
			}
			if len(items) == 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart has no purchasable lines")
			}
			return orderRepo.CreateItems(ctx, items)
		}); err != nil {
			return err
		}

		order.PrecioTotal = total
		if err := orderRepo.Update(ctx, &order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order total")
		}

		if err := s.runStage(ctx, &stages, StageEmptyCart, func() error {
			_, err := cartRepo.DeleteAllForUser(ctx, input.UsuarioID)
			return err
		}); err != nil {
			return err
		}

		invoice := models.Invoice{
			PedidoID: order.ID,
			Numero:   fmt.Sprintf("FAC-%06d", order.ID),
			Total:    total,
		}
		if err := s.runStage(ctx, &stages, StageGenerateInvoice, func() error {
			return orderRepo.CreateInvoice(ctx, &invoice)
		}); err != nil {
			return err
		}

		out = CheckoutDTO{
			Order: orders.OrderDTO{
				ID:           order.ID,
				UsuarioID:    order.UsuarioID,
				Cliente:      order.Cliente,
				Direccion:    order.Direccion,
				MetodoPago:   order.MetodoPago,
				EstadoPedido: order.EstadoPedido,
				FechaPedido:  order.FechaPedido,
				PrecioTotal:  order.PrecioTotal,
			},
			Invoice: orders.InvoiceDTO{
				ID:        invoice.ID,
				PedidoID:  invoice.PedidoID,
				Numero:    invoice.Numero,
				Total:     invoice.Total,
				EmitidaAt: invoice.EmitidaAt,
			},
			Stages: stages,
		}
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return CheckoutDTO{}, typed.WithDetails(stageDetails(stages))
		}
		return CheckoutDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "checkout failed").
			WithDetails(stageDetails(stages))
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":  input.UsuarioID,
			"order_id": out.Order.ID,
			"total":    out.Order.PrecioTotal.StringFixed(2),
		})
		s.logg.Info(logCtx, "checkout.completed")
	}
	return out, nil
}

// runStage executes fn, records its outcome, and feeds the stage metrics.
func (s *service) runStage(ctx context.Context, stages *[]StageResult, stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ObserveDuration(stage, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(stage)
		*stages = append(*stages, StageResult{Stage: stage, OK: false, Error: err.Error()})
		if s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "stage", stage), "checkout.stage_failed", err)
		}
		return err
	}
	s.metrics.IncSuccess(stage)
	*stages = append(*stages, StageResult{Stage: stage, OK: true})
	return nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func stageDetails(stages []StageResult) map[string]any {
	if len(stages) == 0 {
		return map[string]any{"stage": StageCreateOrder}
	}
	last := stages[len(stages)-1]
	return map[string]any{"stage": last.Stage, "stages": stages}
}

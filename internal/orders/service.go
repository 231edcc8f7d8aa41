package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/classmart/classmart-backend/internal/mailer"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo   *Repository
	Client *db.Client
	Mailer mailer.Sender
}

// Service exposes order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (OrderDTO, error)
	Get(ctx context.Context, id int64) (OrderDTO, error)
	List(ctx context.Context) ([]OrderDTO, error)
	ListPage(ctx context.Context, params pagination.Params) (OrderPageDTO, error)
	Update(ctx context.Context, id int64, input UpdateOrderInput) (OrderDTO, error)
	Delete(ctx context.Context, id int64) error

	ListItems(ctx context.Context) ([]OrderItemDTO, error)
	GetItem(ctx context.Context, id int64) (OrderItemDTO, error)
	CreateItem(ctx context.Context, input CreateOrderItemInput) (OrderItemDTO, error)
	FillItems(ctx context.Context, items []CreateOrderItemInput) ([]OrderItemDTO, error)

	GenerateInvoice(ctx context.Context, orderID int64) (InvoiceDTO, error)
	SendCancelEmail(ctx context.Context, dest, mensaje string) error
}

type service struct {
	repo   *Repository
	client *db.Client
	mailer mailer.Sender
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.Client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mailer is required")
	}
	return &service{repo: params.Repo, client: params.Client, mailer: params.Mailer}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (OrderDTO, error) {
	if input.PrecioTotal.IsNegative() {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "precio_total must not be negative")
	}
	order := models.Order{
		UsuarioID:   input.UsuarioID,
		Cliente:     input.Cliente,
		Direccion:   input.Direccion,
		MetodoPago:  input.MetodoPago,
		PrecioTotal: input.PrecioTotal,
	}
	if err := s.repo.Create(ctx, &order); err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return toDTO(order), nil
}

func (s *service) Get(ctx context.Context, id int64) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}
	return toDTO(*order), nil
}

func (s *service) List(ctx context.Context) ([]OrderDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record))
	}
	return dtos, nil
}

// ListPage serves the order history with keyset pagination. The plain List
// call keeps returning the whole table for the legacy admin screens.
func (s *service) ListPage(ctx context.Context, params pagination.Params) (OrderPageDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return OrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	records, err := s.repo.ListPage(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return OrderPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := OrderPageDTO{Items: make([]OrderDTO, 0, limit)}
	if len(records) > limit {
		records = records[:limit]
		last := records[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	for _, record := range records {
		page.Items = append(page.Items, toDTO(record))
	}
	return page, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateOrderInput) (OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return OrderDTO{}, err
	}

	order.Cliente = input.Cliente
	order.Direccion = input.Direccion
	order.MetodoPago = input.MetodoPago
	order.EstadoPedido = input.EstadoPedido
	order.PrecioTotal = input.PrecioTotal

	if err := s.repo.Update(ctx, order); err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return toDTO(*order), nil
}

// Delete cancels the order outright; its item rows cascade away.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.loadOrder(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func (s *service) ListItems(ctx context.Context) ([]OrderItemDTO, error) {
	records, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}
	return itemsToDTOs(records), nil
}

func (s *service) GetItem(ctx context.Context, id int64) (OrderItemDTO, error) {
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order item not found")
		}
		return OrderItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
	}
	return itemToDTO(*item), nil
}

func (s *service) CreateItem(ctx context.Context, input CreateOrderItemInput) (OrderItemDTO, error) {
	dtos, err := s.FillItems(ctx, []CreateOrderItemInput{input})
	if err != nil {
		return OrderItemDTO{}, err
	}
	return dtos[0], nil
}

// FillItems inserts the batch and decrements stock in one transaction, so a
// line referencing a missing product or exceeding stock aborts the whole batch.
func (s *service) FillItems(ctx context.Context, items []CreateOrderItemInput) ([]OrderItemDTO, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items are required")
	}

	records := make([]models.OrderItem, 0, len(items))
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		for _, item := range items {
			if _, err := repo.FindByID(ctx, item.PedidoPpid); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
			}
			if err := repo.DecrementStock(ctx, item.ProductoPpid, item.CantidadProductoCarrito); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product").
						WithDetails(map[string]any{"producto_ppid": item.ProductoPpid})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			records = append(records, models.OrderItem{
				PedidoID:                item.PedidoPpid,
				ProductoID:              item.ProductoPpid,
				CantidadProductoCarrito: item.CantidadProductoCarrito,
			})
		}

		return repo.CreateItems(ctx, records)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fill order items")
	}
	return itemsToDTOs(records), nil
}

// GenerateInvoice creates (or returns the existing) factura for an order.
func (s *service) GenerateInvoice(ctx context.Context, orderID int64) (InvoiceDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return InvoiceDTO{}, err
	}

	if existing, err := s.repo.FindInvoiceByOrder(ctx, orderID); err == nil {
		return invoiceToDTO(*existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return InvoiceDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}

	total := order.PrecioTotal
	if total.IsZero() {
		total, err = s.repo.ItemsTotal(ctx, orderID)
		if err != nil {
			return InvoiceDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute invoice total")
		}
	}

	invoice := models.Invoice{
		PedidoID: orderID,
		Numero:   fmt.Sprintf("FAC-%06d", orderID),
		Total:    total,
	}
	if err := s.repo.CreateInvoice(ctx, &invoice); err != nil {
		if db.IsUniqueViolation(err, "facturas_pedido_key") {
			if existing, findErr := s.repo.FindInvoiceByOrder(ctx, orderID); findErr == nil {
				return invoiceToDTO(*existing), nil
			}
		}
		return InvoiceDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return invoiceToDTO(invoice), nil
}

// SendCancelEmail notifies a customer that their order was cancelled.
func (s *service) SendCancelEmail(ctx context.Context, dest, mensaje string) error {
	if dest == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "dest is required")
	}
	if err := s.mailer.Send(ctx, dest, "Pedido cancelado", mensaje); err != nil {
		return err
	}
	return nil
}

func (s *service) loadOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func toDTO(order models.Order) OrderDTO {
	return OrderDTO{
		ID:           order.ID,
		UsuarioID:    order.UsuarioID,
		Cliente:      order.Cliente,
		Direccion:    order.Direccion,
		MetodoPago:   order.MetodoPago,
		EstadoPedido: order.EstadoPedido,
		FechaPedido:  order.FechaPedido,
		PrecioTotal:  order.PrecioTotal,
	}
}

func itemToDTO(item models.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ID:                      item.ID,
		PedidoPpid:              item.PedidoID,
		ProductoPpid:            item.ProductoID,
		CantidadProductoCarrito: item.CantidadProductoCarrito,
	}
}

func invoiceToDTO(invoice models.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:        invoice.ID,
		PedidoID:  invoice.PedidoID,
		Numero:    invoice.Numero,
		Total:     invoice.Total,
		EmitidaAt: invoice.EmitidaAt,
	}
}

func itemsToDTOs(records []models.OrderItem) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, itemToDTO(record))
	}
	return dtos
}

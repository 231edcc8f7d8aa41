package controllers

import (
	"net/http"

	"github.com/classmart/classmart-backend/api/responses"
	dashboardsvc "github.com/classmart/classmart-backend/internal/dashboard"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
)

// dashboardHandler wraps the shared guard-then-query shape of every dashboard
// endpoint.
func dashboardHandler[T any](svc dashboardsvc.Service, logg *logger.Logger, query func(r *http.Request) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		result, err := query(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TopSellingProducts handles GET /api/productos_mas_vendidos.
func TopSellingProducts(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) ([]dashboardsvc.TopProductDTO, error) {
		return svc.TopSellingProducts(r.Context())
	})
}

// ProductSalesTable handles GET /api/productosMasVendidos.
func ProductSalesTable(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) ([]dashboardsvc.ProductSalesRowDTO, error) {
		return svc.ProductSalesTable(r.Context())
	})
}

// UserIndicators handles GET /api/indicadores_por_usuario.
func UserIndicators(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) ([]dashboardsvc.UserIndicatorDTO, error) {
		return svc.UserIndicators(r.Context())
	})
}

// DailySales handles GET /api/ventas_diarias.
func DailySales(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) ([]dashboardsvc.DailySalesDTO, error) {
		return svc.DailySales(r.Context())
	})
}

// PaymentMethods handles GET /api/metodos_pago_mas_utilizados.
func PaymentMethods(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) ([]dashboardsvc.PaymentMethodDTO, error) {
		return svc.PaymentMethods(r.Context())
	})
}

// TotalSales handles GET /api/valor_total_ventas.
func TotalSales(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) (dashboardsvc.TotalSalesDTO, error) {
		return svc.TotalSales(r.Context())
	})
}

// OrdersByStatus handles GET /api/pedidos_por_estado.
func OrdersByStatus(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dashboardHandler(svc, logg, func(r *http.Request) ([]dashboardsvc.OrderStatusDTO, error) {
		return svc.OrdersByStatus(r.Context())
	})
}

package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/classmart/classmart-backend/internal/auth"
	cartsvc "github.com/classmart/classmart-backend/internal/cart"
	categorysvc "github.com/classmart/classmart-backend/internal/categories"
	checkoutsvc "github.com/classmart/classmart-backend/internal/checkout"
	dashboardsvc "github.com/classmart/classmart-backend/internal/dashboard"
	favoritesvc "github.com/classmart/classmart-backend/internal/favorites"
	ordersvc "github.com/classmart/classmart-backend/internal/orders"
	productsvc "github.com/classmart/classmart-backend/internal/products"
	usersvc "github.com/classmart/classmart-backend/internal/users"
	pkgauth "github.com/classmart/classmart-backend/pkg/auth"
	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/logger"
	"github.com/classmart/classmart-backend/pkg/pagination"
)

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginInput) (authsvc.LoginDTO, error) {
	return authsvc.LoginDTO{}, nil
}
func (stubAuthService) Logout(context.Context, string) error { panic("unimplemented") }
func (stubAuthService) Register(context.Context, authsvc.RegisterInput) (authsvc.RegisterDTO, error) {
	panic("unimplemented")
}
func (stubAuthService) VerifyEmail(context.Context, string) error { panic("unimplemented") }

type stubCategoriesService struct{}

func (stubCategoriesService) Create(context.Context, categorysvc.CreateCategoryInput) (categorysvc.CategoryDTO, error) {
	panic("unimplemented")
}
func (stubCategoriesService) Get(context.Context, int64) (categorysvc.CategoryDTO, error) {
	panic("unimplemented")
}
func (stubCategoriesService) List(context.Context) ([]categorysvc.CategoryDTO, error) {
	return []categorysvc.CategoryDTO{}, nil
}
func (stubCategoriesService) Update(context.Context, int64, categorysvc.UpdateCategoryInput) (categorysvc.CategoryDTO, error) {
	panic("unimplemented")
}
func (stubCategoriesService) Delete(context.Context, int64) error { panic("unimplemented") }

type stubProductsService struct{}

func (stubProductsService) Create(context.Context, productsvc.CreateProductInput) (productsvc.ProductDTO, error) {
	panic("unimplemented")
}
func (stubProductsService) Get(context.Context, int64) (productsvc.ProductDTO, error) {
	panic("unimplemented")
}
func (stubProductsService) List(context.Context) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}
func (stubProductsService) Filter(context.Context, string, string) ([]productsvc.ProductDTO, error) {
	panic("unimplemented")
}
func (stubProductsService) Update(context.Context, int64, productsvc.UpdateProductInput) (productsvc.ProductDTO, error) {
	panic("unimplemented")
}
func (stubProductsService) PatchStock(context.Context, int64, productsvc.PatchStockInput) (productsvc.ProductDTO, error) {
	panic("unimplemented")
}
func (stubProductsService) Delete(context.Context, int64) error { panic("unimplemented") }

type stubUsersService struct{}

func (stubUsersService) Create(context.Context, usersvc.CreateUserInput) (usersvc.UserDTO, error) {
	panic("unimplemented")
}
func (stubUsersService) Get(context.Context, int64) (usersvc.UserDTO, error) {
	panic("unimplemented")
}
func (stubUsersService) List(context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}
func (stubUsersService) Search(context.Context, string, string) ([]usersvc.UserDTO, error) {
	panic("unimplemented")
}
func (stubUsersService) Update(context.Context, usersvc.UpdateUserInput) (usersvc.UserDTO, error) {
	panic("unimplemented")
}
func (stubUsersService) Delete(context.Context, int64) error { panic("unimplemented") }

type stubCartService struct{}

func (stubCartService) ListByUser(context.Context, int64) ([]cartsvc.LineDTO, error) {
	return []cartsvc.LineDTO{}, nil
}
func (stubCartService) AddLine(context.Context, cartsvc.AddLineInput) (cartsvc.LineDTO, error) {
	panic("unimplemented")
}
func (stubCartService) SetQuantity(context.Context, int64, cartsvc.PatchQuantityInput) (cartsvc.LineDTO, error) {
	panic("unimplemented")
}
func (stubCartService) RemoveLine(context.Context, int64) error { panic("unimplemented") }
func (stubCartService) Empty(context.Context, int64) (int64, error) {
	panic("unimplemented")
}
func (stubCartService) Total(context.Context, int64) (cartsvc.TotalDTO, error) {
	panic("unimplemented")
}

type stubFavoritesService struct{}

func (stubFavoritesService) List(context.Context, int64) ([]favoritesvc.FavoriteDTO, error) {
	return []favoritesvc.FavoriteDTO{}, nil
}
func (stubFavoritesService) Create(context.Context, favoritesvc.CreateFavoriteInput) (favoritesvc.FavoriteDTO, error) {
	panic("unimplemented")
}
func (stubFavoritesService) Delete(context.Context, int64) error { panic("unimplemented") }

type stubOrdersService struct{}

func (stubOrdersService) Create(context.Context, ordersvc.CreateOrderInput) (ordersvc.OrderDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) Get(context.Context, int64) (ordersvc.OrderDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) List(context.Context) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}
func (stubOrdersService) ListPage(context.Context, pagination.Params) (ordersvc.OrderPageDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) Update(context.Context, int64, ordersvc.UpdateOrderInput) (ordersvc.OrderDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) Delete(context.Context, int64) error { panic("unimplemented") }
func (stubOrdersService) ListItems(context.Context) ([]ordersvc.OrderItemDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) GetItem(context.Context, int64) (ordersvc.OrderItemDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) CreateItem(context.Context, ordersvc.CreateOrderItemInput) (ordersvc.OrderItemDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) FillItems(context.Context, []ordersvc.CreateOrderItemInput) ([]ordersvc.OrderItemDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) GenerateInvoice(context.Context, int64) (ordersvc.InvoiceDTO, error) {
	panic("unimplemented")
}
func (stubOrdersService) SendCancelEmail(context.Context, string, string) error {
	panic("unimplemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) Checkout(context.Context, checkoutsvc.CheckoutInput) (checkoutsvc.CheckoutDTO, error) {
	panic("unimplemented")
}

type stubDashboardService struct{}

func (stubDashboardService) TopSellingProducts(context.Context) ([]dashboardsvc.TopProductDTO, error) {
	panic("unimplemented")
}
func (stubDashboardService) ProductSalesTable(context.Context) ([]dashboardsvc.ProductSalesRowDTO, error) {
	panic("unimplemented")
}
func (stubDashboardService) UserIndicators(context.Context) ([]dashboardsvc.UserIndicatorDTO, error) {
	panic("unimplemented")
}
func (stubDashboardService) DailySales(context.Context) ([]dashboardsvc.DailySalesDTO, error) {
	panic("unimplemented")
}
func (stubDashboardService) PaymentMethods(context.Context) ([]dashboardsvc.PaymentMethodDTO, error) {
	panic("unimplemented")
}
func (stubDashboardService) TotalSales(context.Context) (dashboardsvc.TotalSalesDTO, error) {
	return dashboardsvc.TotalSalesDTO{}, nil
}
func (stubDashboardService) OrdersByStatus(context.Context) ([]dashboardsvc.OrderStatusDTO, error) {
	panic("unimplemented")
}

// stubSessionChecker accepts every session so routing tests only exercise the
// JWT itself.
type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) { return true, nil }

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "routing-test-secret",
			Issuer:            "classmart-test",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 120,
		},
		// Rate limiting stays disabled so no Redis client is needed.
	}
}

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{
		ServiceName: "test-routing",
		Level:       logger.ParseLevel("debug"),
		Output:      io.Discard,
	})

	return NewRouter(cfg, logg, nil, nil, stubSessionChecker{}, nil, nil, Services{
		Auth:       stubAuthService{},
		Categories: stubCategoriesService{},
		Products:   stubProductsService{},
		Users:      stubUsersService{},
		Cart:       stubCartService{},
		Favorites:  stubFavoritesService{},
		Orders:     stubOrdersService{},
		Checkout:   stubCheckoutService{},
		Dashboard:  stubDashboardService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, staff bool) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:  7,
		IsStaff: staff,
		JTI:     "routing-test-session",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicStorefrontRoutesSkipAuth(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	for _, path := range []string{"/api/productos/", "/api/categorias/", "/api/favoritos/", "/api/search_users_products/?criteria=usuario_id&value=7"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/pedidos/"},
		{http.MethodPost, "/api/users_products/"},
		{http.MethodPatch, "/api/users_products/3/"},
		{http.MethodDelete, "/api/users_products/3/"},
		{http.MethodDelete, "/api/delete_all_userProducts/?user_id=7"},
	}
	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestAuthenticatedRoutesAcceptTokenScheme(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)
	token := buildToken(t, cfg, false)

	req := httptest.NewRequest(http.MethodGet, "/api/pedidos/", nil)
	req.Header.Set("Authorization", "Token "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestStaffRoutesRejectNonStaffToken(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)
	token := buildToken(t, cfg, false)

	for _, path := range []string{"/api/usuarios/", "/api/valor_total_ventas/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Token "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusForbidden {
			t.Fatalf("GET %s: expected 403 got %d", path, resp.Code)
		}
	}
}

func TestStaffRoutesAcceptStaffToken(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)
	token := buildToken(t, cfg, true)

	for _, path := range []string{"/api/usuarios/", "/api/valor_total_ventas/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Token "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestLoginRouteIsOpen(t *testing.T) {
	cfg := testConfig()
	router := testRouter(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ana","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

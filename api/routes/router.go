package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/classmart/classmart-backend/api/controllers"
	"github.com/classmart/classmart-backend/api/middleware"
	authsvc "github.com/classmart/classmart-backend/internal/auth"
	cartsvc "github.com/classmart/classmart-backend/internal/cart"
	categorysvc "github.com/classmart/classmart-backend/internal/categories"
	checkoutsvc "github.com/classmart/classmart-backend/internal/checkout"
	dashboardsvc "github.com/classmart/classmart-backend/internal/dashboard"
	favoritesvc "github.com/classmart/classmart-backend/internal/favorites"
	"github.com/classmart/classmart-backend/internal/media"
	ordersvc "github.com/classmart/classmart-backend/internal/orders"
	productsvc "github.com/classmart/classmart-backend/internal/products"
	usersvc "github.com/classmart/classmart-backend/internal/users"
	"github.com/classmart/classmart-backend/pkg/auth/session"
	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/logger"
	"github.com/classmart/classmart-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth       authsvc.Service
	Categories categorysvc.Service
	Products   productsvc.Service
	Users      usersvc.Service
	Cart       cartsvc.Service
	Favorites  favoritesvc.Service
	Orders     ordersvc.Service
	Checkout   checkoutsvc.Service
	Dashboard  dashboardsvc.Service
}

// NewRouter wires the full HTTP surface. Legacy paths keep their historical
// shapes (trailing slashes, verbs, Spanish names) so the browser clients keep
// working unchanged.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	sessions session.Checker,
	mediaStore *media.Store,
	metricsRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		chimiddleware.StripSlashes,
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbClient, redisClient, logg))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	if mediaStore != nil {
		prefix := mediaStore.PublicPath()
		fileServer := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(mediaStore.Dir())))
		r.Handle(prefix+"/*", fileServer)
	}

	r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
	r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register_user", controllers.Register(svcs.Auth, logg))
	r.Get("/verify_email", controllers.VerifyEmail(svcs.Auth, logg))
	r.Post("/logout", controllers.Logout(svcs.Auth, cfg.JWT, logg))

	r.Route("/api", func(r chi.Router) {
		// Storefront reads stay open; favoritos keeps its historical
		// no-auth quirk. Every mutation below requires a token.
		r.Group(func(r chi.Router) {
			r.Get("/categorias", controllers.ListCategories(svcs.Categories, logg))
			r.Get("/categorias/{id}", controllers.GetCategory(svcs.Categories, logg))

			r.Get("/productos", controllers.ListProducts(svcs.Products, logg))
			r.Get("/productos/{id}", controllers.GetProduct(svcs.Products, logg))
			r.Get("/filter_products", controllers.FilterProducts(svcs.Products, logg))

			r.Get("/search_users_products", controllers.SearchCartLines(svcs.Cart, logg))
			r.Get("/users_products/total", controllers.CartTotal(svcs.Cart, logg))

			r.Get("/favoritos", controllers.ListFavorites(svcs.Favorites, logg))
			r.Post("/favoritos", controllers.CreateFavorite(svcs.Favorites, logg))
			r.Delete("/favoritos/{id}", controllers.DeleteFavorite(svcs.Favorites, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))

			r.Post("/users_products", controllers.AddCartLine(svcs.Cart, logg))
			r.Patch("/users_products/{id}", controllers.PatchCartLine(svcs.Cart, logg))
			r.Delete("/users_products/{id}", controllers.DeleteCartLine(svcs.Cart, logg))
			r.Delete("/delete_all_userProducts", controllers.EmptyCart(svcs.Cart, logg))

			r.Post("/categorias", controllers.CreateCategory(svcs.Categories, logg))
			r.Put("/categorias/{id}", controllers.UpdateCategory(svcs.Categories, logg))
			r.Delete("/categorias/{id}", controllers.DeleteCategory(svcs.Categories, logg))

			r.Post("/productos", controllers.CreateProduct(svcs.Products, logg))
			r.Put("/productos/{id}", controllers.UpdateProduct(svcs.Products, logg))
			r.Patch("/productos/{id}", controllers.PatchProductStock(svcs.Products, logg))
			r.Delete("/productos/{id}", controllers.DeleteProduct(svcs.Products, logg))

			r.Get("/pedidos", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/pedidos/{id}", controllers.GetOrder(svcs.Orders, logg))
			r.Post("/pedidos", controllers.CreateOrder(svcs.Orders, logg))
			r.Put("/pedidos/{id}", controllers.UpdateOrder(svcs.Orders, logg))
			r.Delete("/pedidos/{id}", controllers.DeleteOrder(svcs.Orders, logg))

			r.Get("/pedidos_productos", controllers.ListOrderItems(svcs.Orders, logg))
			r.Get("/pedidos_productos/{id}", controllers.GetOrderItem(svcs.Orders, logg))
			r.Post("/pedidos_productos", controllers.CreateOrderItem(svcs.Orders, logg))
			r.Post("/llenarTablaProductosPedidos", controllers.FillOrderItems(svcs.Orders, logg))
			r.Get("/generar_factura", controllers.GenerateInvoice(svcs.Orders, logg))
			r.Get("/send_email_cancel", controllers.SendCancelEmail(svcs.Orders, logg))

			r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

			r.Put("/usuarios/update_user", controllers.UpdateUser(svcs.Users, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireStaff(logg))

				r.Get("/usuarios", controllers.ListUsers(svcs.Users, logg))
				r.Get("/usuarios/search_users", controllers.SearchUsers(svcs.Users, logg))
				r.Get("/usuarios/{id}", controllers.GetUser(svcs.Users, logg))
				r.Post("/usuarios", controllers.CreateUser(svcs.Users, logg))
				r.Delete("/usuarios/{id}", controllers.DeleteUser(svcs.Users, logg))

				r.Get("/productos_mas_vendidos", controllers.TopSellingProducts(svcs.Dashboard, logg))
				r.Get("/productosMasVendidos", controllers.ProductSalesTable(svcs.Dashboard, logg))
				r.Get("/indicadores_por_usuario", controllers.UserIndicators(svcs.Dashboard, logg))
				r.Get("/ventas_diarias", controllers.DailySales(svcs.Dashboard, logg))
				r.Get("/metodos_pago_mas_utilizados", controllers.PaymentMethods(svcs.Dashboard, logg))
				r.Get("/valor_total_ventas", controllers.TotalSales(svcs.Dashboard, logg))
				r.Get("/pedidos_por_estado", controllers.OrdersByStatus(svcs.Dashboard, logg))
			})
		})
	})

	return r
}

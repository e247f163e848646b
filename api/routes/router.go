package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcastellon/shopora-backend/api/controllers"
	"github.com/mcastellon/shopora-backend/api/middleware"
	"github.com/mcastellon/shopora-backend/internal/address"
	"github.com/mcastellon/shopora-backend/internal/auth"
	"github.com/mcastellon/shopora-backend/internal/brands"
	"github.com/mcastellon/shopora-backend/internal/cart"
	"github.com/mcastellon/shopora-backend/internal/categories"
	checkoutsvc "github.com/mcastellon/shopora-backend/internal/checkout"
	"github.com/mcastellon/shopora-backend/internal/coupons"
	"github.com/mcastellon/shopora-backend/internal/orders"
	"github.com/mcastellon/shopora-backend/internal/products"
	"github.com/mcastellon/shopora-backend/pkg/config"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	"github.com/mcastellon/shopora-backend/pkg/logger"
	"github.com/mcastellon/shopora-backend/pkg/metrics"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth       auth.Service
	Brands     brands.Service
	Categories categories.Service
	Products   products.Service
	Coupons    coupons.Service
	Cart       cart.Service
	Addresses  address.Service
	Checkout   checkoutsvc.Service
	Orders     orders.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins...),
		middleware.Metrics(httpMetrics),
		middleware.Session(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(svcs.Auth, logg))
		r.Post("/login", controllers.Login(svcs.Auth, logg))
	})

	r.Route("/api/v1/shop", func(r chi.Router) {
		r.Get("/products", controllers.ShopList(svcs.Products, logg))
		r.Get("/products/{slug}", controllers.ShopProductDetail(svcs.Products, logg))
		r.Get("/categories", controllers.CategoriesAll(svcs.Categories, logg))
	})

	r.Post("/api/v1/coupons/validate", controllers.CouponsValidate(svcs.Coupons, logg))

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.CartContent(svcs.Cart, logg))
		r.Delete("/", controllers.CartEmpty(svcs.Cart, logg))
		r.Post("/items", controllers.CartAdd(svcs.Cart, logg))
		r.Put("/items/{productId}/increase", controllers.CartIncrease(svcs.Cart, logg))
		r.Put("/items/{productId}/decrease", controllers.CartDecrease(svcs.Cart, logg))
		r.Delete("/items/{productId}", controllers.CartRemove(svcs.Cart, logg))
		r.Post("/coupon", controllers.CartApplyCoupon(svcs.Cart, logg))
		r.Delete("/coupon", controllers.CartRemoveCoupon(svcs.Cart, logg))
		r.Post("/checkout", controllers.CartCheckout(svcs.Cart, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/api/v1/checkout", func(r chi.Router) {
			r.Post("/place-order", controllers.PlaceOrder(svcs.Checkout, logg))
			r.Get("/confirmation", controllers.OrderConfirmation(svcs.Checkout, svcs.Orders, logg))
		})

		r.Route("/api/v1/my", func(r chi.Router) {
			r.Get("/orders", controllers.MyOrders(svcs.Orders, logg))
			r.Get("/addresses", controllers.AddressesList(svcs.Addresses, logg))
			r.Post("/addresses", controllers.AddressesCreate(svcs.Addresses, logg))
		})

		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", controllers.BrandsList(svcs.Brands, logg))
				r.Post("/", controllers.BrandsCreate(svcs.Brands, logg))
				r.Get("/{brandId}", controllers.BrandsShow(svcs.Brands, logg))
				r.Put("/{brandId}", controllers.BrandsUpdate(svcs.Brands, logg))
				r.Delete("/{brandId}", controllers.BrandsDelete(svcs.Brands, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.CategoriesList(svcs.Categories, logg))
				r.Post("/", controllers.CategoriesCreate(svcs.Categories, logg))
				r.Get("/{categoryId}", controllers.CategoriesShow(svcs.Categories, logg))
				r.Put("/{categoryId}", controllers.CategoriesUpdate(svcs.Categories, logg))
				r.Delete("/{categoryId}", controllers.CategoriesDelete(svcs.Categories, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductsList(svcs.Products, logg))
				r.Post("/", controllers.ProductsCreate(svcs.Products, logg))
				r.Get("/{productId}", controllers.ProductsShow(svcs.Products, logg))
				r.Put("/{productId}", controllers.ProductsUpdate(svcs.Products, logg))
				r.Delete("/{productId}", controllers.ProductsDelete(svcs.Products, logg))
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", controllers.CouponsList(svcs.Coupons, logg))
				r.Post("/", controllers.CouponsCreate(svcs.Coupons, logg))
				r.Get("/{couponId}", controllers.CouponsShow(svcs.Coupons, logg))
				r.Put("/{couponId}", controllers.CouponsUpdate(svcs.Coupons, logg))
				r.Delete("/{couponId}", controllers.CouponsDelete(svcs.Coupons, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersList(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.AdminOrdersShow(svcs.Orders, logg))
				r.Put("/{orderId}/status", controllers.AdminOrdersUpdateStatus(svcs.Orders, logg))
			})
		})
	})

	return r
}

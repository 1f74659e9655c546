package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swiftcart/swiftcart-backend/api/controllers"
	"github.com/swiftcart/swiftcart-backend/api/middleware"
	ordersvc "github.com/swiftcart/swiftcart-backend/internal/orders"
	otpsvc "github.com/swiftcart/swiftcart-backend/internal/otp"
	paymentsvc "github.com/swiftcart/swiftcart-backend/internal/payment"
	productsvc "github.com/swiftcart/swiftcart-backend/internal/products"
	usersvc "github.com/swiftcart/swiftcart-backend/internal/users"
	"github.com/swiftcart/swiftcart-backend/pkg/config"
	"github.com/swiftcart/swiftcart-backend/pkg/db"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
	"github.com/swiftcart/swiftcart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient redis.Pinger,
	registry *prometheus.Registry,
	productService productsvc.Service,
	orderService ordersvc.Service,
	userService usersvc.Service,
	otpService *otpsvc.Service,
	paymentService *paymentsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})
	r.Get("/healthz", controllers.HealthReady(cfg, dbP, redisClient, logg))

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		// Browsing and sign-in stay open; the OTP handshake is what
		// proves an identity before a token exists.
		r.Get("/products", controllers.ListProducts(productService, logg))
		r.Get("/products/{productID}", controllers.GetProduct(productService, logg))

		r.Get("/users/check", controllers.CheckIdentifier(userService, logg))
		r.Post("/users/register", controllers.Register(userService, logg))
		r.Post("/users/login", controllers.Login(userService, logg))

		r.Post("/send-otp", controllers.SendOTP(otpService, cfg.OTP, logg))
		r.Post("/verify-otp", controllers.VerifyOTP(otpService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/users/{userID}", controllers.GetUser(userService, logg))
			r.Put("/users/{userID}", controllers.UpdateUser(userService, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(orderService, logg))
				r.Post("/", controllers.CreateOrder(orderService, logg))
				r.Get("/{orderID}", controllers.GetOrder(orderService, logg))
				r.With(middleware.RequireAdmin(logg)).
					Patch("/{orderID}", controllers.UpdateOrderStatus(orderService, logg))
			})

			r.Post("/payment/initiate", controllers.InitiatePayment(paymentService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Post("/products", controllers.CreateProduct(productService, logg))
				r.Put("/products/{productID}", controllers.UpdateProduct(productService, logg))
				r.Delete("/products/{productID}", controllers.DeleteProduct(productService, logg))
			})
		})
	})

	return r
}

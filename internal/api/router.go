package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cartloom/admin-api/internal/api/handler"
	"github.com/cartloom/admin-api/internal/api/middleware"
	"github.com/cartloom/admin-api/internal/api/session"
	"github.com/cartloom/admin-api/internal/core/service"
	"github.com/cartloom/admin-api/internal/infrastructure/config"
	mongodb "github.com/cartloom/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cartloom/admin-api/internal/infrastructure/db/redis"
	"github.com/cartloom/admin-api/internal/infrastructure/payment"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSAllowedOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("commerce_admin"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	var limiter service.LoginLimiter
	if rdb != nil {
		limiter = redisdb.NewLoginLimiter(rdb)
	}
	gateway := payment.NewClient(payment.Config{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	})

	issuer := session.NewIssuer(cfg.JWTSecret, cfg.Env)
	authService := service.NewAuthService(userRepo, limiter, cfg.AdminCreationKey, log)
	orderService := service.NewOrderService(orderRepo, userRepo, log)
	paymentService := service.NewPaymentService(gateway, orderRepo, cfg.Razorpay.KeySecret, log)

	authHandler := handler.NewAuthHandler(authService, issuer)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	authRequired := middleware.Auth(issuer, userRepo)
	adminRequired := middleware.AdminOnly()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/adminLogin", authHandler.AdminLogin)
	e.POST("/auth/google", authHandler.Google)
	e.POST("/auth/make-admin", authHandler.MakeAdmin)
	e.GET("/auth/getMe", authHandler.Me, authRequired)
	e.GET("/auth/getAdmin", authHandler.Admin, authRequired, adminRequired)
	e.GET("/auth/logout", authHandler.Logout)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Order routes ---
	e.GET("/orders", orderHandler.List, authRequired)
	e.POST("/orders", orderHandler.Create, authRequired)
	e.GET("/orders/:id", orderHandler.Get, authRequired)
	e.PATCH("/orders/:id", orderHandler.UpdateStatus, authRequired)
	e.DELETE("/orders/:id", orderHandler.Delete, authRequired)
	e.GET("/myOrders", orderHandler.MyOrders, authRequired)

	// --- Payment routes ---
	e.POST("/create-razorpay-order", paymentHandler.CreateProviderOrder)
	e.POST("/verify-payment", paymentHandler.VerifyPayment)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"conta-bancaria/internal/config"
	"conta-bancaria/internal/database"
	"conta-bancaria/internal/handlers"
	custommw "conta-bancaria/internal/middleware"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/repositories"
	"conta-bancaria/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments configure through the environment
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	feeRepo := repositories.NewFeeRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	authCodeRepo := repositories.NewAuthCodeRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, authCodeRepo, auditRepo,
		passwordService, tokenService, metrics, logger, cfg.Security.AuthCodeTTL)
	customerService := services.NewCustomerService(userRepo, accountRepo, auditRepo,
		passwordService, metrics, logger)
	managerService := services.NewManagerService(userRepo, auditRepo,
		passwordService, metrics, logger)
	ledgerService := services.NewLedgerService(accountRepo, userRepo, auditRepo, metrics, logger)
	paymentService := services.NewPaymentService(paymentRepo, accountRepo, feeRepo,
		auditRepo, metrics, logger)
	feeService := services.NewFeeService(feeRepo, logger)

	// A fresh database has no staff user, which would leave the
	// staff-only endpoints unreachable.
	if err := managerService.EnsureAdmin(cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminCPF,
		cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		slog.Error("Failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg.IsDevelopment())
	customerHandler := handlers.NewCustomerHandler(customerService)
	managerHandler := handlers.NewManagerHandler(managerService)
	accountHandler := handlers.NewAccountHandler(ledgerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	feeHandler := handlers.NewFeeHandler(feeService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = custommw.CustomHTTPErrorHandler

	e.Use(custommw.RequestID())
	e.Use(custommw.PanicRecovery())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, custommw.TraceIDHeader},
	}))

	registerRoutes(e, tokenService,
		healthHandler, authHandler, customerHandler, managerHandler,
		accountHandler, paymentHandler, feeHandler)

	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		slog.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}

func registerRoutes(
	e *echo.Echo,
	tokenService services.TokenServiceInterface,
	healthHandler *handlers.HealthCheckHandler,
	authHandler *handlers.AuthHandler,
	customerHandler *handlers.CustomerHandler,
	managerHandler *handlers.ManagerHandler,
	accountHandler *handlers.AccountHandler,
	paymentHandler *handlers.PaymentHandler,
	feeHandler *handlers.FeeHandler,
) {
	// Public surface
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/validate", authHandler.ValidateCode)
	e.POST("/customers", customerHandler.Register)

	// Authenticated surface
	api := e.Group("", custommw.RequireAuth(tokenService))

	accounts := api.Group("/accounts")
	accounts.GET("", accountHandler.ListAccounts)
	accounts.GET("/:number", accountHandler.GetAccount)
	accounts.POST("/:number/withdraw", accountHandler.Withdraw)
	accounts.POST("/:number/deposit", accountHandler.Deposit)
	accounts.POST("/:number/transfer", accountHandler.Transfer)
	accounts.POST("/:number/interest", accountHandler.ApplyInterest)
	accounts.POST("/:number/payments", paymentHandler.PayBoleto)
	accounts.GET("/:number/payments", paymentHandler.ListPayments)

	api.GET("/payments/:paymentId", paymentHandler.GetPayment)
	api.GET("/customers/:customerId", customerHandler.GetCustomer)
	api.GET("/customers/:customerId/accounts", customerHandler.GetCustomerAccounts)
	api.PATCH("/customers/:customerId", customerHandler.UpdateCustomer)
	api.GET("/fees", feeHandler.ListFees)
	api.GET("/fees/:feeId", feeHandler.GetFee)

	// Staff-only surface
	staff := api.Group("", custommw.RequireManager())
	staff.POST("/accounts", accountHandler.RegisterAccount)
	staff.PATCH("/accounts/:number/parameters", accountHandler.UpdateParameters)
	staff.DELETE("/accounts/:number", accountHandler.CloseAccount)
	staff.GET("/customers", customerHandler.ListCustomers)
	staff.GET("/customers/by-cpf/:cpf", customerHandler.GetCustomerByCPF)
	staff.DELETE("/customers/:customerId", customerHandler.Deactivate)
	staff.POST("/fees", feeHandler.CreateFee)
	staff.PUT("/fees/:feeId", feeHandler.UpdateFee)
	staff.DELETE("/fees/:feeId", feeHandler.DeleteFee)

	// Admin-only surface
	admin := api.Group("/managers", custommw.RequireRole(models.RoleAdmin))
	admin.POST("", managerHandler.Register)
	admin.GET("", managerHandler.ListManagers)
	admin.GET("/:managerId", managerHandler.GetManager)
	admin.PATCH("/:managerId", managerHandler.UpdateManager)
	admin.DELETE("/:managerId", managerHandler.Deactivate)
}

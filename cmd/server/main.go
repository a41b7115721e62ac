package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/cartrade/backend/internal/application/billing"
	commissionapp "github.com/cartrade/backend/internal/application/commission"
	fleetapp "github.com/cartrade/backend/internal/application/fleet"
	procurementapp "github.com/cartrade/backend/internal/application/procurement"
	salesapp "github.com/cartrade/backend/internal/application/sales"
	settingsapp "github.com/cartrade/backend/internal/application/settings"
	"github.com/cartrade/backend/internal/infrastructure/config"
	"github.com/cartrade/backend/internal/infrastructure/event"
	"github.com/cartrade/backend/internal/infrastructure/logger"
	"github.com/cartrade/backend/internal/infrastructure/persistence"
	"github.com/cartrade/backend/internal/infrastructure/scheduler"
	"github.com/cartrade/backend/internal/interfaces/http/handler"
	"github.com/cartrade/backend/internal/interfaces/http/middleware"
	"github.com/cartrade/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			CarTrade Backend API
//	@version		1.0
//	@description	Vehicle import trading backend: purchases, landed costs, sales, invoicing and trader commissions.

//	@contact.name	API Support
//	@contact.url	https://github.com/cartrade/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CarTrade Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database schema up to date")

	// Initialize repositories
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	planRepo := persistence.NewGormPaymentPlanRepository(db.DB)
	tierRepo := persistence.NewGormTierRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	summaryRepo := persistence.NewGormSummaryRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	configRepo := persistence.NewGormConfigurationRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Initialize application services
	purchaseService := procurementapp.NewPurchaseService(purchaseRepo, rateRepo, configRepo)
	vehicleService := fleetapp.NewVehicleService(vehicleRepo, purchaseRepo, configRepo)
	saleService := salesapp.NewSaleService(saleRepo, vehicleRepo, purchaseRepo, configRepo).
		WithTransactionManager(txManager)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, saleRepo, configRepo)
	planService := billingapp.NewPaymentPlanService(planRepo, invoiceRepo, log).
		WithNotifier(billingapp.NewLoggingInstallmentNotifier(log))
	tierService := commissionapp.NewTierService(tierRepo)
	settlementService := commissionapp.NewSettlementService(
		periodRepo, summaryRepo, tierRepo, adjustmentRepo, saleRepo, configRepo, log,
	).WithTransactionManager(txManager)
	settingsService := settingsapp.NewSettingsService(configRepo, rateRepo)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Customs clearance -> vehicles released from the customs yard
	customsClearedHandler := fleetapp.NewCustomsClearedHandler(log, vehicleRepo)
	eventBus.Subscribe(customsClearedHandler)

	log.Info("Event handlers registered",
		zap.Strings("customs_cleared_events", customsClearedHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	purchaseService.SetEventPublisher(eventBus)
	vehicleService.SetEventPublisher(eventBus)
	saleService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)
	planService.SetEventPublisher(eventBus)
	settlementService.SetEventPublisher(eventBus)

	// Background jobs: reservation expiry sweep and installment reminders
	if cfg.Scheduler.Enabled {
		jobScheduler, err := scheduler.NewScheduler(scheduler.Config{
			ReservationSweepInterval:    cfg.Scheduler.ReservationSweepInterval,
			InstallmentReminderSchedule: cfg.Scheduler.InstallmentReminderSchedule,
			CheckInterval:               time.Minute,
		}, vehicleService, planService, log)
		if err != nil {
			log.Fatal("Failed to create scheduler", zap.Error(err))
		}
		if err := jobScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.Duration("reservation_sweep_interval", cfg.Scheduler.ReservationSweepInterval),
			zap.String("installment_reminder_schedule", cfg.Scheduler.InstallmentReminderSchedule),
		)
	}

	// Initialize HTTP handlers
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	saleHandler := handler.NewSaleHandler(saleService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	planHandler := handler.NewPaymentPlanHandler(planService)
	tierHandler := handler.NewCommissionTierHandler(tierService)
	settlementHandler := handler.NewSettlementHandler(settlementService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Procurement domain (supplier purchases, freight, customs)
	purchaseRoutes := router.NewDomainGroup("procurement", "/purchases")
	purchaseRoutes.POST("", purchaseHandler.Create)
	purchaseRoutes.GET("", purchaseHandler.List)
	purchaseRoutes.GET("/number/:purchase_number", purchaseHandler.GetByNumber)
	purchaseRoutes.GET("/:id", purchaseHandler.GetByID)
	purchaseRoutes.PUT("/:id/pricing", purchaseHandler.UpdatePricing)
	purchaseRoutes.POST("/:id/freight", purchaseHandler.RecordFreight)
	purchaseRoutes.POST("/:id/customs", purchaseHandler.DeclareCustoms)
	purchaseRoutes.POST("/:id/customs/clear", purchaseHandler.ClearCustoms)
	purchaseRoutes.DELETE("/:id", purchaseHandler.Delete)

	// Fleet domain (vehicle inventory)
	vehicleRoutes := router.NewDomainGroup("fleet", "/vehicles")
	vehicleRoutes.POST("", vehicleHandler.Create)
	vehicleRoutes.GET("", vehicleHandler.List)
	vehicleRoutes.GET("/vin/:vin", vehicleHandler.GetByVIN)
	vehicleRoutes.GET("/:id", vehicleHandler.GetByID)
	vehicleRoutes.GET("/:id/landed-cost", vehicleHandler.LandedCost)
	vehicleRoutes.POST("/:id/arrive", vehicleHandler.ArriveAtCustoms)
	vehicleRoutes.POST("/:id/available", vehicleHandler.MarkAvailable)
	vehicleRoutes.POST("/:id/reserve", vehicleHandler.Reserve)
	vehicleRoutes.POST("/:id/release", vehicleHandler.Release)

	// Sales domain
	saleRoutes := router.NewDomainGroup("sales", "/sales")
	saleRoutes.POST("", saleHandler.Create)
	saleRoutes.GET("", saleHandler.List)
	saleRoutes.GET("/number/:sale_number", saleHandler.GetByNumber)
	saleRoutes.GET("/:id", saleHandler.GetByID)
	saleRoutes.PUT("/:id/terms", saleHandler.UpdateTerms)
	saleRoutes.POST("/:id/finalize", saleHandler.Finalize)

	// Billing domain (invoices, payments)
	invoiceRoutes := router.NewDomainGroup("billing", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/overdue", invoiceHandler.ListOverdue)
	invoiceRoutes.GET("/number/:invoice_number", invoiceHandler.GetByNumber)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.POST("/:id/issue", invoiceHandler.Issue)
	invoiceRoutes.POST("/:id/cancel", invoiceHandler.Cancel)
	invoiceRoutes.POST("/:id/payments", invoiceHandler.RecordPayment)
	invoiceRoutes.PUT("/:id/payments/:payment_id", invoiceHandler.AmendPayment)
	invoiceRoutes.POST("/:id/payments/:payment_id/unconfirm", invoiceHandler.UnconfirmPayment)

	// Installment plans
	planRoutes := router.NewDomainGroup("payment-plans", "/payment-plans")
	planRoutes.POST("", planHandler.Create)
	planRoutes.GET("", planHandler.List)
	planRoutes.GET("/invoice/:invoice_id", planHandler.GetByInvoice)
	planRoutes.GET("/:id", planHandler.GetByID)
	planRoutes.POST("/:id/installments", planHandler.RecordInstallment)
	planRoutes.POST("/:id/complete", planHandler.Complete)
	planRoutes.POST("/:id/default", planHandler.MarkDefaulted)
	planRoutes.POST("/:id/cancel", planHandler.Cancel)

	// Commission domain (tiers, periods, settlements)
	commissionRoutes := router.NewDomainGroup("commission", "/commission")
	commissionRoutes.POST("/tiers", tierHandler.Create)
	commissionRoutes.GET("/tiers", tierHandler.List)
	commissionRoutes.GET("/tiers/:id", tierHandler.GetByID)
	commissionRoutes.POST("/tiers/:id/activate", tierHandler.Activate)
	commissionRoutes.POST("/tiers/:id/deactivate", tierHandler.Deactivate)
	commissionRoutes.POST("/periods", settlementHandler.EnsurePeriod)
	commissionRoutes.POST("/periods/close", settlementHandler.ClosePeriod)
	commissionRoutes.POST("/periods/:id/tier-bonuses", settlementHandler.ApplyTierBonuses)
	commissionRoutes.GET("/summaries", settlementHandler.ListSummaries)
	commissionRoutes.GET("/summaries/:id", settlementHandler.GetSummary)
	commissionRoutes.POST("/summaries/:id/approve", settlementHandler.Approve)
	commissionRoutes.POST("/summaries/:id/pay", settlementHandler.Pay)
	commissionRoutes.POST("/summaries/:id/cancel-payout", settlementHandler.CancelPayout)
	commissionRoutes.POST("/adjustments", settlementHandler.CreateAdjustment)
	commissionRoutes.GET("/statements/:trader_id/:period_id", settlementHandler.TraderStatement)

	// Settings domain (system configuration)
	settingsRoutes := router.NewDomainGroup("settings", "/settings")
	settingsRoutes.GET("", settingsHandler.GetConfiguration)
	settingsRoutes.PUT("/rates", settingsHandler.UpdateRates)
	settingsRoutes.PUT("/company", settingsHandler.UpdateCompanyInfo)

	// Exchange rate history
	rateRoutes := router.NewDomainGroup("exchange-rates", "/exchange-rates")
	rateRoutes.POST("", settingsHandler.RecordExchangeRate)
	rateRoutes.GET("", settingsHandler.ListRates)
	rateRoutes.GET("/latest", settingsHandler.GetLatestRate)
	rateRoutes.GET("/convert", settingsHandler.Convert)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(purchaseRoutes).
		Register(vehicleRoutes).
		Register(saleRoutes).
		Register(invoiceRoutes).
		Register(planRoutes).
		Register(commissionRoutes).
		Register(settingsRoutes).
		Register(rateRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

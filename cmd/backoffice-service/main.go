package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hypernova-labs/backoffice-service/internal/api"
	"github.com/hypernova-labs/backoffice-service/internal/config"
	"github.com/hypernova-labs/backoffice-service/internal/database"
	"github.com/hypernova-labs/backoffice-service/internal/email"
	"github.com/hypernova-labs/backoffice-service/internal/services"
	"github.com/hypernova-labs/backoffice-service/internal/storage"
	"github.com/hypernova-labs/backoffice-service/internal/validation"
	"github.com/hypernova-labs/backoffice-service/internal/workflows"
)

func main() {
	// Cargar configuración
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Configurar logging
	logger := setupLogger(cfg)
	logger.Info("Starting backoffice service...")

	// Configurar modo de Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Conectar a la base de datos
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			logger.Fatalf("Error applying schema: %v", err)
		}
		logger.Info("Database schema is up to date")
	}

	checks := map[string]api.HealthChecker{"database": db}

	// Conectar a Redis (cache de vehículos, opcional)
	var vehicleCache services.VehicleCache
	redis, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Warnf("Error connecting to Redis, vehicle cache disabled: %v", err)
	} else {
		defer redis.Close()
		vehicleCache = redis
		checks["redis"] = redis
	}

	// Almacenamiento de comprobantes
	var receipts services.ReceiptStorage
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		client, err := storage.NewS3Client(ctx, &cfg.Storage)
		if err != nil {
			logger.Warnf("Error initializing receipt storage: %v", err)
		} else {
			store := storage.NewReceiptStore(client, &cfg.Storage, logger)
			receipts = store
			checks["storage"] = store
			logger.WithField("bucket", cfg.Storage.Bucket).Info("Receipt storage initialized")
		}
	} else {
		logger.Warn("Storage credentials not provided, receipt upload will not be available")
	}

	// Inicializar servicio de Resend
	var notifier services.ReceivedNotifier
	if cfg.Email.ResendAPIKey != "" {
		notifier = email.NewResendService(cfg.Email.ResendAPIKey, cfg.Email.From, cfg.Email.NotifyTo, cfg.Server.BaseURL, logger)
		logger.Info("Resend service initialized successfully")
	} else {
		logger.Warn("Resend API key not provided, receipt notifications will not be sent")
	}

	// Inicializar cliente de Inngest
	var events services.EventPublisher
	inngestClient, err := workflows.NewInngestClient(cfg, logger)
	if err != nil {
		logger.Warnf("Inngest not available, domain events will not be published: %v", err)
	} else {
		events = inngestClient
	}

	// Capa de validación
	validator := validation.New(
		validation.WithStrictConsistency(cfg.Validation.StrictConsistency),
		validation.WithTolerance(cfg.Validation.Tolerance),
	)
	logger.WithFields(logrus.Fields{
		"strict":    validator.Strict(),
		"tolerance": cfg.Validation.Tolerance.String(),
	}).Info("Validation layer configured")

	// Inicializar servicios
	vehicleService := services.NewVehicleService(database.NewVehicleRepository(db, logger), vehicleCache, validator, logger)
	svcs := api.Services{
		Customers:         services.NewCustomerService(database.NewCustomerRepository(db, logger), validator, logger),
		ReceivingAccounts: services.NewReceivingAccountService(database.NewReceivingAccountRepository(db, logger), validator, logger),
		Receivables: services.NewReceivableService(
			database.NewReceivableRepository(db, logger),
			database.NewReceivingAccountRepository(db, logger),
			receipts,
			notifier,
			events,
			validator,
			logger,
		),
		Vehicles:    vehicleService,
		FuelEntries: services.NewFuelEntryService(database.NewFuelEntryRepository(db, logger), vehicleService, events, validator, logger),
		Validation:  services.NewValidationService(validator, vehicleService),
	}

	// Inicializar API
	apiHandler := api.NewAPI(svcs, cfg, checks, logger)

	// Configurar router
	router := setupRouter(apiHandler, cfg)

	// Crear servidor HTTP
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Estadísticas periódicas de los pools
	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go logStats(statsCtx, db, redis, logger)

	// Canal para señales de terminación
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Iniciar servidor en goroutine
	go func() {
		logger.Infof("Server starting on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	// Esperar señal de terminación
	<-quit
	logger.Info("Shutting down server...")

	// Contexto con timeout para shutdown graceful
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// setupLogger configura el logger según la configuración
func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	// Configurar nivel de log
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Configurar formato
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// setupRouter configura el router principal
func setupRouter(apiHandler *api.API, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Middleware global
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Middleware de CORS para desarrollo
	if cfg.IsDevelopment() {
		router.Use(func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-API-Key")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(204)
				return
			}

			c.Next()
		})
	}

	apiHandler.RegisterRoutes(router)
	return router
}

// logStats registra las estadísticas de los pools cada cinco minutos
func logStats(ctx context.Context, db *database.DB, redis *database.Redis, logger *logrus.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			db.LogStats(logger)
			if redis != nil {
				redis.LogStats(logger)
			}
		}
	}
}

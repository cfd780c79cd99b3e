package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq" // Driver de PostgreSQL
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	financeUseCase "sales/src/finance/application/usecase"
	financeController "sales/src/finance/infrastructure/controller"
	financePersistence "sales/src/finance/infrastructure/persistence"
	inventoryPort "sales/src/inventory/domain/port"
	inventoryPersistence "sales/src/inventory/infrastructure/persistence"
	salesUseCase "sales/src/sales/application/usecase"
	salesPort "sales/src/sales/domain/port"
	salesCache "sales/src/sales/infrastructure/cache"
	salesController "sales/src/sales/infrastructure/controller"
	salesDirectory "sales/src/sales/infrastructure/directory"
	salesMessaging "sales/src/sales/infrastructure/messaging"
	salesPersistence "sales/src/sales/infrastructure/persistence"
	salesSequencer "sales/src/sales/infrastructure/sequencer"
	"sales/src/shared/domain/transaction"
	"sales/src/shared/infrastructure/config"
	"sales/src/shared/infrastructure/memory"
	sharedPersistence "sales/src/shared/infrastructure/persistence"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	logger.Info("starting sales service", zap.String("port", cfg.Port))

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Conectar a la base de datos. Sin DB el servicio arranca igual con
	// el store en memoria (desarrollo y demos).
	db := connectDB(cfg, logger)
	if db != nil {
		defer db.Close()
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "database": db != nil})
	})

	v1 := router.Group("/api/v1")

	setupSalesModule(v1, cfg, db, logger)
	if db != nil {
		setupFinanceModule(v1, db, logger)
	}

	logger.Info("sales service listening", zap.String("addr", ":"+cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// connectDB abre la conexión, la verifica y aplica el esquema una sola
// vez. Cualquier falla degrada al modo en memoria.
func connectDB(cfg config.Config, logger *zap.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Warn("could not open database, falling back to in-memory store", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Warn("database unreachable, falling back to in-memory store", zap.Error(err))
		db.Close()
		return nil
	}

	if err := sharedPersistence.EnsureSchema(ctx, db); err != nil {
		logger.Warn("could not apply schema, falling back to in-memory store", zap.Error(err))
		db.Close()
		return nil
	}

	logger.Info("database connection established", zap.String("db", cfg.DBName))
	return db
}

// setupSalesModule configura el módulo Sales con sus dos variantes de
// infraestructura: PostgreSQL o store en memoria
func setupSalesModule(router *gin.RouterGroup, cfg config.Config, db *sql.DB, logger *zap.Logger) {
	var (
		txManager transaction.Manager
		saleRepo  salesPort.SaleRepository
		ledger    inventoryPort.StockLedger
		directory salesPort.ClientDirectory
		seq       salesPort.SaleSequencer
	)

	if db != nil {
		txManager = sharedPersistence.NewPostgresTxManager(db)
		saleRepo = salesPersistence.NewSalePostgresRepository(db)
		ledger = inventoryPersistence.NewStockPostgresLedger(db)
		directory = salesCache.NewClientCache(salesDirectory.NewClientPostgresDirectory(db))
		seq = salesSequencer.NewPostgresSequencer(db, cfg.SalePrefix)
	} else {
		store := memory.NewStore()
		txManager = store
		saleRepo = store
		ledger = store
		directory = store
		seq = salesSequencer.NewMemorySequencer(cfg.SalePrefix)
	}

	// Redis reemplaza al secuenciador de la base cuando hay varias
	// instancias compartiendo la numeración
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		seq = salesSequencer.NewRedisSequencer(client, cfg.SalePrefix)
		logger.Info("using redis sale sequencer", zap.String("addr", cfg.RedisAddr))
	}

	// Eventos de ciclo de vida, opcionales
	var publisher salesPort.EventPublisher
	if cfg.AMQPURL != "" {
		_, rabbit, err := salesMessaging.Setup(cfg.AMQPURL)
		if err != nil {
			logger.Warn("could not connect to RabbitMQ, events disabled", zap.Error(err))
		} else {
			publisher = rabbit
			logger.Info("sale lifecycle events enabled")
		}
	}

	builder := salesUseCase.NewSaleBuilder(directory, ledger)

	createUC := salesUseCase.NewCreateSaleUseCase(builder, seq, saleRepo, ledger, txManager, logger)
	updateUC := salesUseCase.NewUpdateSaleUseCase(builder, saleRepo, ledger, txManager, logger)
	confirmUC := salesUseCase.NewConfirmDeliveryUseCase(saleRepo, ledger, txManager, publisher, logger)
	cancelUC := salesUseCase.NewCancelSaleUseCase(saleRepo, ledger, txManager, publisher, logger)
	approveUC := salesUseCase.NewApproveSaleUseCase(saleRepo, txManager, logger)
	getUC := salesUseCase.NewGetSaleUseCase(saleRepo, directory)
	listUC := salesUseCase.NewListSalesUseCase(saleRepo, directory)

	ctrl := salesController.NewSaleController(
		createUC, updateUC, confirmUC, cancelUC, approveUC, getUC, listUC,
		directory, logger,
	)
	ctrl.RegisterRoutes(router)

	logger.Info("sales module configured", zap.Bool("postgres", db != nil))
}

// setupFinanceModule configura el módulo Finance (solo con DB)
func setupFinanceModule(router *gin.RouterGroup, db *sql.DB, logger *zap.Logger) {
	repo := financePersistence.NewFinancePostgresRepository(db)

	setGoalUC := financeUseCase.NewSetMonthlyGoalUseCase(repo, logger)
	recordExpenseUC := financeUseCase.NewRecordExpenseUseCase(repo, logger)
	listExpensesUC := financeUseCase.NewListExpensesUseCase(repo)
	monthlyReportUC := financeUseCase.NewMonthlyReportUseCase(repo)

	ctrl := financeController.NewFinanceController(
		setGoalUC, recordExpenseUC, listExpensesUC, monthlyReportUC,
		logger,
	)
	ctrl.RegisterRoutes(router)

	logger.Info("finance module configured")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/recyhub/recy-backend/internal/config"
	"github.com/recyhub/recy-backend/internal/db"
	"github.com/recyhub/recy-backend/internal/events"
	"github.com/recyhub/recy-backend/internal/goroutine"
	httpHandlers "github.com/recyhub/recy-backend/internal/http/handlers"
	httpRouter "github.com/recyhub/recy-backend/internal/http/router"
	"github.com/recyhub/recy-backend/internal/infrastructure/kvstore"
	"github.com/recyhub/recy-backend/internal/infrastructure/persistence"
	"github.com/recyhub/recy-backend/internal/interface/http/handler"
	"github.com/recyhub/recy-backend/internal/logger"
	"github.com/recyhub/recy-backend/internal/storage"
	"github.com/recyhub/recy-backend/internal/usecase/chat"
	"github.com/recyhub/recy-backend/internal/usecase/impact"
	"github.com/recyhub/recy-backend/internal/usecase/product"
	"github.com/recyhub/recy-backend/internal/usecase/request"
	"github.com/recyhub/recy-backend/internal/usecase/resource"
	"github.com/recyhub/recy-backend/internal/usecase/seed"
	"github.com/recyhub/recy-backend/internal/validation"
	"github.com/recyhub/recy-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logger.SetTextFormatter()
	}
	mainLog := logger.Component("main")

	if err := validation.RegisterBindings(); err != nil {
		mainLog.WithError(err).Fatal("не удалось зарегистрировать правила валидации")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось открыть хранилище")
	}
	defer func() {
		if err := store.Close(); err != nil {
			mainLog.WithError(err).Warn("ошибка закрытия хранилища")
		}
	}()

	// Репозитории.
	resourceRepo := persistence.NewResourceRepositoryAdapter(store, cfg.StoreMaxRetries)
	requestRepo := persistence.NewRequestRepositoryAdapter(store, cfg.StoreMaxRetries)
	chatRepo := persistence.NewChatRoomRepositoryAdapter(store, cfg.StoreMaxRetries)
	productRepo := persistence.NewProductRepositoryAdapter(store, cfg.StoreMaxRetries)
	ratingRepo := persistence.NewRatingRepositoryAdapter(store, cfg.StoreMaxRetries)

	notifier := events.NewNotifier()

	// Use cases.
	addResourceUC := resource.NewAddResourceUseCase(resourceRepo, notifier)
	completeResourceUC := resource.NewCompleteResourceUseCase(resourceRepo, notifier)
	requestResourceUC := request.NewRequestResourceUseCase(requestRepo, resourceRepo, notifier, cfg.StrictReferences)
	updateRequestUC := request.NewUpdateRequestStatusUseCase(requestRepo, notifier, cfg.StrictReferences)
	createChatUC := chat.NewCreateChatRoomUseCase(chatRepo, notifier)
	postMessageUC := chat.NewPostMessageUseCase(chatRepo, notifier, cfg.StrictReferences)
	postProductUC := product.NewPostProductUseCase(productRepo, notifier)
	rateUC := impact.NewRateUseCase(ratingRepo, notifier, cfg.StrictReferences)

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)
	sub := ws.NewBridge(hub, resourceRepo, chatRepo).Attach(notifier)
	defer sub.Unsubscribe()

	// Файлы.
	images, err := storage.NewImageStorage(cfg.UploadDir, "uploads", cfg.MaxUploadSizeMB)
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось подготовить файловое хранилище")
	}
	surplusStore, err := storage.NewSurplusStore(cfg.SurplusDataFile)
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось подготовить файл излишков")
	}

	// HTTP хэндлеры.
	handlers := httpRouter.Handlers{
		Health:  httpHandlers.NewHealthHandler(store, cfg.StoreDriver),
		WS:      httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
		Surplus: httpHandlers.NewSurplusHandler(surplusStore, images, cfg.MaxUploadFiles),
		Static:  httpHandlers.NewStaticHandler(cfg.StaticDir, cfg.SPAEntry),
		Resource: handler.NewResourceHandler(
			addResourceUC,
			resource.NewListResourcesUseCase(resourceRepo),
			resource.NewGetResourceUseCase(resourceRepo),
			completeResourceUC,
			resource.NewListResourcesNearUseCase(resourceRepo),
			impact.NewComputeImpactUseCase(resourceRepo),
		),
		Request: handler.NewRequestHandler(
			requestResourceUC,
			request.NewListRequestsForDonorUseCase(requestRepo, resourceRepo),
			request.NewListRequestsForUpcyclerUseCase(requestRepo),
			updateRequestUC,
			impact.NewComputeDonorImpactUseCase(resourceRepo),
		),
		Chat: handler.NewChatHandler(
			createChatUC,
			postMessageUC,
			chat.NewListChatsForUseCase(chatRepo),
			chat.NewGetChatRoomUseCase(chatRepo),
			chat.NewUpdateMessageStatusUseCase(chatRepo, notifier),
		),
		Product: handler.NewProductHandler(
			postProductUC,
			product.NewListProductsUseCase(productRepo),
			rateUC,
			impact.NewListRatingsUseCase(ratingRepo),
		),
	}
	if cfg.IsDevelopment() {
		handlers.Seed = httpHandlers.NewSeedHandler(seed.NewDemoSeedUseCase(
			addResourceUC,
			completeResourceUC,
			requestResourceUC,
			updateRequestUC,
			createChatUC,
			postMessageUC,
			postProductUC,
			rateUC,
		))
	}

	engine := httpRouter.SetupRouter(cfg, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Warn("ошибка остановки http сервера")
		}
	})

	mainLog.WithField("port", cfg.HTTPPort).WithField("store", cfg.StoreDriver).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.WithError(err).Fatal("сервер завершился с ошибкой")
	}
}

// openStore выбирает хранилище коллекций по STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return kvstore.NewMemoryStore(), nil
	}

	driver := db.DriverPostgres
	if cfg.StoreDriver == config.StoreSQLite {
		driver = db.DriverSQLite
	}
	conn, err := db.Open(ctx, driver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, conn, cfg.MigrationsPath); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return kvstore.NewSQLStore(conn), nil
}

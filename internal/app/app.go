package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"example.com/shopping-list/config"
	domproduct "example.com/shopping-list/internal/domain/product"
	domlist "example.com/shopping-list/internal/domain/shoppinglist"
	"example.com/shopping-list/internal/infra/cache"
	"example.com/shopping-list/internal/infra/locale"
	"example.com/shopping-list/internal/infra/persistence/mysql"
	"example.com/shopping-list/internal/infra/persistence/postgres"
	httpapi "example.com/shopping-list/internal/interface/http"
	productuc "example.com/shopping-list/internal/usecase/product"
	listuc "example.com/shopping-list/internal/usecase/shoppinglist"
)

type repositories struct {
	products domproduct.Repository
	lists    domlist.Repository
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	db         *sql.DB
	redis      *redis.Client
	repos      repositories
	listSvc    *listuc.Service
	productSvc *productuc.Service
	httpServer *httpapi.Server
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initServices()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	const op = "App.initLogger"

	level, err := app.cfg.SlogLevel()
	if err != nil {
		app.fallDown(op, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"
	log := slog.With("op", op)

	dsn := app.cfg.Storage.DSN

	switch app.cfg.Storage.Driver {
	case config.DriverMySQL:
		if app.cfg.Storage.Migrate {
			if err := mysql.Migrate(dsn); err != nil {
				app.fallDown(op, err)
			}
		}
		db, err := mysql.Open(app.ctx, dsn)
		if err != nil {
			app.fallDown(op, err)
		}
		app.db = db
		app.repos.products = mysql.NewProductRepository(db)
		app.repos.lists = mysql.NewShoppingListRepository(db)
	case config.DriverPostgres:
		if app.cfg.Storage.Migrate {
			if err := postgres.Migrate(dsn); err != nil {
				app.fallDown(op, err)
			}
		}
		db, err := postgres.Open(app.ctx, dsn)
		if err != nil {
			app.fallDown(op, err)
		}
		app.db = db
		app.repos.products = postgres.NewProductRepository(db)
		app.repos.lists = postgres.NewShoppingListRepository(db)
	default:
		app.fallDown(op, fmt.Errorf("unsupported storage driver %q", app.cfg.Storage.Driver))
	}

	log.Info("storage is ready", "driver", app.cfg.Storage.Driver)
}

func (app *App) initServices() {
	const op = "App.initServices"
	log := slog.With("op", op)

	prices, err := locale.NewPrices(app.cfg.Locale)
	if err != nil {
		app.fallDown(op, err)
	}

	app.listSvc = listuc.NewService(app.repos.lists)

	opts := []productuc.Option{
		productuc.WithInfoLabels(productuc.InfoLabels{
			Items: app.cfg.Labels.Items,
			Total: app.cfg.Labels.Total,
		}),
	}

	if addr := app.cfg.Redis.Addr; addr != "" {
		client, err := cache.NewRedisClient(app.ctx, addr)
		if err != nil {
			log.Warn("autocomplete cache disabled", "err", err)
		} else {
			app.redis = client
			autoComplete := cache.NewAutoCompleteCache(client,
				cache.WithTTL(app.cfg.Redis.TTL),
				cache.WithPrefix(app.cfg.Redis.Prefix),
			)
			opts = append(opts, productuc.WithAutoCompleteCache(autoComplete))
		}
	}

	app.productSvc = productuc.NewService(
		app.repos.products,
		productuc.NewConverter(prices),
		app.listSvc,
		opts...,
	)
}

func (app *App) initHTTPServer() {
	var limiter *rate.Limiter
	if app.cfg.HTTP.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(app.cfg.HTTP.RateLimit), app.cfg.HTTP.Burst)
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		ListService:    app.listSvc,
		ProductService: app.productSvc,
		Limiter:        limiter,
	})
	app.httpServer = httpapi.NewServer(httpapi.ServerConfig{
		Addr:              app.cfg.HTTP.Addr,
		ReadHeaderTimeout: app.cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       app.cfg.HTTP.IdleTimeout,
		HandlerTimeout:    app.cfg.HTTP.HandlerTimeout,
		ShutdownTimeout:   app.cfg.HTTP.ShutdownTimeout,
	}, api.Router())
}

// Run serves HTTP until ctx is done or the server fails.
func (app *App) Run(ctx context.Context) error {
	slog.Info("application is running")
	return app.httpServer.Serve(ctx)
}

func (app *App) Close() {
	const op = "App.Close"
	log := slog.With("op", op)

	log.Info("application is closing...")

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			log.Error("failed to close redis client", "err", err)
		}
	}
	if err := app.db.Close(); err != nil {
		log.Error("failed to close database", "err", err)
	}

	log.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

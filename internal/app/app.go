package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/Pavithra-p25/ecommerce-catalog/config"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/adapter/auth"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/adapter/httphandler"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/adapter/kafka"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/adapter/storage"
	"github.com/Pavithra-p25/ecommerce-catalog/internal/core/service"
	"github.com/Pavithra-p25/ecommerce-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      storage.SQLDB
	producer   kafka.ProductEventsProducer
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventsProducer()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb

	admins := storage.NewAdminsRepository(sqldb)
	err = admins.EnsureDefaultAdmin(
		app.ctx, app.cfg.Auth.AdminUsername, app.cfg.Auth.AdminPassword,
	)
	if err != nil {
		app.fallDown(op, err)
	}
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.ProductEventsTopic + "-value"
	serde, err := schema.NewSerdeProductEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreator(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewProductEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.ProductEventsTopic,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initHTTPServer() {
	jwtManager := auth.NewJWTManager(
		app.cfg.Auth.JWTSecret, app.cfg.Auth.TokenTTL,
	)

	catalogService := service.NewCatalog(
		storage.NewProductsRepository(app.sqldb), app.producer,
	)
	authService := service.NewAuth(
		storage.NewAdminsRepository(app.sqldb), jwtManager,
	)

	mux := http.NewServeMux()
	httphandler.RegisterAuth(mux, authService)
	httphandler.RegisterProducts(
		mux,
		catalogService, catalogService, catalogService,
		httphandler.RequireAuth(jwtManager),
	)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.producer.Close()
	app.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "todo_service/docs"
	"todo_service/internal/config"
	"todo_service/internal/handlers"
	"todo_service/internal/logger"
	"todo_service/internal/repository"
	"todo_service/internal/repository/db"
	"todo_service/internal/server"
	"todo_service/internal/service"

	"github.com/jmoiron/sqlx"
)

const shutdownTimeout = 10 * time.Second

// @title                       To-do API
// @version                     1.0
// @description                 Multi-tenant to-do list backend with bearer-token auth.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "path to config file (default configs/config.yml)")
	flag.Parse()

	// init logger
	log := logger.Get(logger.InfoLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	// open DB
	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init datastore", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close datastore", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Config{
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	apiHandler := handlers.NewHandler(services, log, cfg.CORS.AllowedOrigins...)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
	_ = log.Sync()
}

// openDB initializes the configured datastore.
func openDB(cfg config.DBConfig, log *logger.Logger) (*sqlx.DB, error) {
	if cfg.Driver == db.DriverSQLite {
		log.Infow("using sqlite datastore", "path", cfg.Path)
	} else {
		log.Infow("using postgres datastore")
	}
	return db.InitDB(db.Config{Driver: cfg.Driver, Path: cfg.Path, DSN: cfg.DSN})
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

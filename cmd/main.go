package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crowdcount/internal/handlers"
	"crowdcount/internal/logger"
	"crowdcount/internal/repository"
	"crowdcount/internal/repository/db"
	"crowdcount/internal/server"
	"crowdcount/internal/service"

	"github.com/spf13/viper"
)

// Fixed administrative account seeded on every startup. Kept as observed in
// the deployed system; rotate the password before exposing this anywhere
// that matters.
const (
	adminUsername = "admin"
	adminEmail    = "admin@crowdcount.com"
	adminPassword = "password123"
)

const (
	defaultDBPath     = "crowdcount.db"
	defaultPort       = "8080"
	defaultTTLMinutes = 60
	devSigningKey     = "dev-only-signing-key"

	seedTimeout = 5 * time.Second
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB and seed the admin account
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(conn)
	if err := seedAdmin(repos); err != nil {
		log.Fatalw("failed to seed admin account", "err", err)
	}

	// wire services and HTTP layer
	services := service.NewService(repos, sessionConfig(log))
	apiHandler := handlers.NewHandler(services, log, handlerConfig())

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.Open(dbPath)
}

// seedAdmin inserts the well-known admin row if missing. Idempotent, runs on
// every startup.
func seedAdmin(repos *repository.Repository) error {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	return repos.Users.SeedAdmin(ctx, adminUsername, adminEmail, service.HashPassword(adminPassword))
}

func sessionConfig(log *logger.Logger) service.SessionConfig {
	key := viper.GetString("session.signing_key")
	if key == "" {
		log.Warnw("session.signing_key not set; using development key")
		key = devSigningKey
	}
	ttl := viper.GetInt("session.ttl_minutes")
	if ttl <= 0 {
		ttl = defaultTTLMinutes
	}
	return service.SessionConfig{
		SigningKey: key,
		TTL:        time.Duration(ttl) * time.Minute,
	}
}

func handlerConfig() handlers.Config {
	ttl := viper.GetInt("session.ttl_minutes")
	if ttl <= 0 {
		ttl = defaultTTLMinutes
	}
	return handlers.Config{
		SessionTTL:     time.Duration(ttl) * time.Minute,
		AllowedOrigins: viper.GetStringSlice("cors.allowed_origins"),
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/groupspace/groupspace/internal/api"
	"github.com/groupspace/groupspace/internal/config"
	"github.com/groupspace/groupspace/internal/database"
	"github.com/groupspace/groupspace/internal/stats"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const defaultSigningKey = "dGhpcy1pcy1hLWRldi1vbmx5LXNpZ25pbmcta2V5LXJvdGF0ZQ=="

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, strings.Split(value, ",")...)
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	addr           string
	dsn            string
	signingKey     string
	migrationsPath string
	allowedOrigins stringSliceFlag
)

func main() {
	// .env is optional, flags and real env vars take precedence
	_ = godotenv.Load()

	flag.StringVar(&addr, "addr", envOrDefault("GROUPSPACE_ADDR", "localhost:8000"), "server address")
	flag.StringVar(&dsn, "dsn", envOrDefault("GROUPSPACE_DSN", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"), "database connection string")
	flag.StringVar(&signingKey, "signing-key", envOrDefault("GROUPSPACE_SIGNING_KEY", defaultSigningKey), "base64 encoded signing key")
	flag.StringVar(&migrationsPath, "migrations", envOrDefault("GROUPSPACE_MIGRATIONS", "migrations"), "path to migration files")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.Parse()

	if len(allowedOrigins) == 0 {
		if origins := os.Getenv("GROUPSPACE_ALLOWED_ORIGINS"); origins != "" {
			allowedOrigins = strings.Split(origins, ",")
		}
	}

	logger := log.New(os.Stderr, "[groupspace] ", log.LstdFlags)

	cfg, err := config.NewConfig(addr, dsn, migrationsPath, signingKey, allowedOrigins)
	if err != nil {
		logger.Fatal("config:", err)
	}

	dbConn, err := database.NewPgGroupSpaceRepository(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	if err := dbConn.Migrate(cfg.MigrationsPath); err != nil {
		logger.Fatal("migrate:", err)
	}

	mux := http.NewServeMux()

	statsUpdater := stats.NewStatsUpdater(mux)
	statsUpdater.RegisterMetric(api.MetricRequestsTotal)
	statsUpdater.RegisterMetric(api.MetricErrorsTotal)

	srv := api.NewGroupSpaceApp(mux, logger, dbConn, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}

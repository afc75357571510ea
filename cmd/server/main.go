// Package main initializes and starts the VendorDesk HTTP server,
// setting up configuration, logging, database connections, repositories,
// services, handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/VendorDesk/internal/config"
	"github.com/atinyakov/VendorDesk/internal/db"
	"github.com/atinyakov/VendorDesk/internal/logger"
	"github.com/atinyakov/VendorDesk/internal/repository"
	"github.com/atinyakov/VendorDesk/internal/server/handler/http"
	"github.com/atinyakov/VendorDesk/internal/service"
	"github.com/atinyakov/VendorDesk/internal/view"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Purge expired login audit rows until shutdown.
	db.StartAuditCleaner(ctx, postgresDB, options.AuditInterval, options.AuditRetention, zapLogger)

	// Repositories.
	vendorRepo := repository.NewPostgresVendorRepository(postgresDB)
	auditRepo := repository.NewPostgresAuditRepository(postgresDB)

	// Business-logic services.
	vendorService := service.NewVendorService(vendorRepo, bcrypt.DefaultCost)
	authFlow := service.NewAuthFlow(vendorService, auditRepo, zapLogger)

	views, err := view.NewTemplateRenderer()
	if err != nil {
		zapLogger.Fatal("failed to load views", zap.Error(err))
	}

	// HTTP handlers and router.
	authHandler := &http.AuthHandler{Auth: authFlow, Views: views, Log: zapLogger}
	vendorHandler := &http.VendorHandler{VendorService: vendorService, Log: zapLogger}
	router := http.NewRouter(authHandler, vendorHandler, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("addr", options.Port),
			zap.Bool("tls", options.TLSEnabled()),
		)
		if options.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(options.TLSCertFile, options.TLSKeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

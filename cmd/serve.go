package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"catalog_service/config"
	"catalog_service/internal/delivery"
	grpcHandler "catalog_service/internal/delivery/grpc"
	"catalog_service/internal/seed"
	"catalog_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

func serve(parent context.Context, cfg *config.Config, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Catalog Service...")

	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := s.close(); err != nil {
			logger.Errorf("Error closing store: %v", err)
		} else {
			logger.Info("Store closed.")
		}
	}()

	if cfg.StoreDriver == config.DriverMemory {
		if err := seed.Run(ctx, s.categories, s.products, logger); err != nil {
			return err
		}
	}

	categoryUseCase := usecase.NewCategoryUseCase(s.categories, logger)
	productUseCase := usecase.NewProductUseCase(s.products, logger)
	userUseCase := usecase.NewUserUseCase(s.users, cfg.BcryptCost, logger)
	logger.Info("Use cases initialized.")

	gin.SetMode(gin.ReleaseMode)
	router := delivery.NewRouter(logger, s.ping,
		delivery.NewCategoryHandler(categoryUseCase, logger),
		delivery.NewProductHandler(productUseCase, logger),
		delivery.NewUserHandler(userUseCase, logger),
	)
	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	reporter := grpcHandler.NewHealthReporter(s.ping, logger)
	grpcServer := grpcHandler.NewServer(reporter, logger)
	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.GrpcPort, err)
	}
	go reporter.Watch(ctx, 15*time.Second)

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("gRPC server listening on %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()
	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Warn("Shutdown signal received...")
	case serveErr = <-errCh:
		logger.Errorf("Server error, shutting down: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	reporter.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown failed: %v", err)
	}
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		logger.Warn("gRPC graceful stop timed out, forcing stop")
		grpcServer.Stop()
	}
	logger.Info("Catalog Service shut down gracefully.")

	return serveErr
}

package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
)

// ServiceName is the name reported by the health service besides the overall "" entry.
const ServiceName = "catalog"

type HealthCheck func(ctx context.Context) error

// HealthReporter keeps the standard gRPC health service in step with the store.
type HealthReporter struct {
	server *health.Server
	check  HealthCheck
	log    *logrus.Logger
}

func NewHealthReporter(check HealthCheck, logger *logrus.Logger) *HealthReporter {
	return &HealthReporter{
		server: health.NewServer(),
		check:  check,
		log:    logger,
	}
}

// Refresh runs the store check once and publishes the result.
func (h *HealthReporter) Refresh(ctx context.Context) {
	state := healthpb.HealthCheckResponse_SERVING
	if h.check != nil {
		if err := h.check(ctx); err != nil {
			h.log.Warnf("gRPC Health: Store check failed: %v", err)
			state = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	h.server.SetServingStatus("", state)
	h.server.SetServingStatus(ServiceName, state)
}

// Watch refreshes the status every interval until ctx is cancelled.
func (h *HealthReporter) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

// Shutdown marks every service as not serving so clients drain.
func (h *HealthReporter) Shutdown() {
	h.server.Shutdown()
}

func LoggingInterceptor(logger *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if m, ok := req.(proto.Message); ok {
			entry = entry.WithField("request_bytes", proto.Size(m))
		}
		if err != nil {
			entry.Warnf("gRPC Handler: Request failed: %v", err)
		} else {
			entry.Debug("gRPC Handler: Request completed")
		}
		return resp, err
	}
}

// NewServer builds the gRPC server with the health and reflection services registered.
func NewServer(reporter *HealthReporter, logger *logrus.Logger) *grpc.Server {
	server := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(logger)))
	healthpb.RegisterHealthServer(server, reporter.server)
	reflection.Register(server)
	logger.Info("gRPC health and reflection services registered")
	return server
}

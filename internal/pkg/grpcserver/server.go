package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	probeInterval = 5 * time.Second
	probeTimeout  = 2 * time.Second
)

// Server отдает только стандартный grpc.health.v1 для оркестратора.
// Статус повторяет HEAD /healthcheck: NOT_SERVING при остановке или недоступной БД.
type Server struct {
	log            logger.Logger
	port           string
	server         *grpc.Server
	health         *health.Server
	db             pinger
	isShuttingDown *atomic.Bool
}

func New(log logger.Logger, cfg config.GRPCServer, db pinger, isShuttingDown *atomic.Bool) *Server {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	return &Server{
		log:            log.With(logger.NewField("component", "grpc-health"), logger.NewField("port", cfg.Port)),
		port:           cfg.Port,
		server:         server,
		health:         healthServer,
		db:             db,
		isShuttingDown: isShuttingDown,
	}
}

// Run блокируется до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", ":"+s.port)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	s.Refresh(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.server.GracefulStop()
	}()

	s.log.Info("gRPC health server starting")
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	s.log.Info("gRPC health server stopped")
	return nil
}

func (s *Server) watch(ctx context.Context) {
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh пересчитывает статус по флагу остановки и пингу БД.
func (s *Server) Refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING

	if s.isShuttingDown.Load() {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	} else {
		pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		if err := s.db.Ping(pingCtx); err != nil {
			s.log.Warn("database ping failed", logger.NewField("error", err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	s.health.SetServingStatus("", status)
}

func (s *Server) Check(ctx context.Context) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

package grpchealth

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"marketplace/pkg/logger"
)

// ServiceName имя сервиса в grpc.health.v1, пустое имя отвечает за процесс целиком.
const ServiceName = "marketplace"

type Server struct {
	grpc   *grpc.Server
	health *health.Server
	log    logger.Logger
}

func New(log logger.Logger) *Server {
	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpc:   grpcServer,
		health: healthServer,
		log:    log.With(logger.NewField("component", "grpc-health")),
	}
}

// Serve блокирует до Stop.
func (s *Server) Serve(lis net.Listener) error {
	s.log.With(logger.NewField("addr", lis.Addr().String())).Info("grpc health server starting")

	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc health serve: %w", err)
	}
	return nil
}

// Shutdown переводит сервис в NOT_SERVING, чтобы балансировщик перестал слать трафик до остановки HTTP.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.log.Info("grpc health switched to NOT_SERVING")
}

func (s *Server) Stop(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.grpc.GracefulStop()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
		<-done
	}
}

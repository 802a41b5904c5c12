package grpcserver

import (
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
	"route-engine/pkg/logger"
)

const (
	KeepaliveTime    = 5 * time.Minute
	KeepaliveTimeout = 3 * time.Second
	MaxConnectionAge = 30 * time.Minute

	// ServiceName имя сервиса в протоколе grpc.health.v1.
	ServiceName = "route-engine"
)

// Server gRPC сервер со стандартным health сервисом. Используется
// оркестратором для readiness проверок наравне с HEAD /healthcheck.
type Server struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func New(log logger.Logger) *Server {
	server := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:             KeepaliveTime,
			Timeout:          KeepaliveTimeout,
			MaxConnectionAge: MaxConnectionAge,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		log: log.With(
			logger.NewField("component", "grpc-server"),
		),
		server: server,
		health: healthServer,
	}
}

// Serve блокирует до остановки сервера.
func (s *Server) Serve(lis net.Listener) error {
	s.log.With(
		logger.NewField("addr", lis.Addr().String()),
	).Info("gRPC server starting")

	err := s.server.Serve(lis)
	if err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

func (s *Server) ListenAndServe(port string) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return s.Serve(lis)
}

// Drain переводит health в NOT_SERVING до остановки, чтобы балансировщик
// успел снять трафик.
func (s *Server) Drain() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

func (s *Server) GracefulStop(timeout time.Duration) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("gRPC server stopped")
	case <-time.After(timeout):
		s.log.Warn("gRPC graceful stop timeout, forcing close")
		s.server.Stop()
	}
}

package grpcapi

import (
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
}

// NewServer registers the commission service, health checks and reflection.
// Health reports NOT_SERVING until MarkServing is called.
func NewServer(handler CommissionServiceServer) *Server {
	grpcServer := grpc.NewServer()

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthSrv.SetServingStatus(commissionServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	RegisterCommissionServiceServer(grpcServer, handler)
	reflection.Register(grpcServer)

	return &Server{grpcServer: grpcServer, health: healthSrv}
}

func (s *Server) MarkServing() {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(commissionServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (s *Server) Serve(lis net.Listener) error {
	slog.Info("grpc server listening", "addr", lis.Addr().String())
	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

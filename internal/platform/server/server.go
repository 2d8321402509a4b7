package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/grpc/careerpathv1"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/grpc/handler"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	health     *health.Server
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, employees employee.UseCase, roles role.UseCase, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.StatsHandler(otelgrpc.NewServerHandler())}, opts...)
	srv := grpc.NewServer(opts...)

	careerpathv1.RegisterCareerPathServiceServer(srv, handler.NewCareerPathGrpcHandler(employees, roles))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(careerpathv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		health:     healthSrv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は与えられたリスナーで待ち受けます。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			select {
			case <-done:
				// Serve は既に戻っている
			default:
				s.GracefulStop()
			}
		case <-done:
		}
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はヘルスチェックを NOT_SERVING にしてからサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

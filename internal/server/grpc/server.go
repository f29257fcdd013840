// Package grpc exposes the standard gRPC health service. Its status tracks
// whether the CSV storage can be read.
package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const defaultCheckInterval = 15 * time.Second

// StoragePinger reports whether storage is usable.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	address       string
	logger        logging.Logger
	storage       StoragePinger
	health        *health.Server
	checkInterval time.Duration

	mu       sync.Mutex
	listener net.Listener
}

func NewGRPCServer(a string, l logging.Logger, storage StoragePinger) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		storage:       storage,
		health:        health.NewServer(),
		checkInterval: defaultCheckInterval,
	}
}

// Addr returns the bound address once Run is listening, or nil.
func (s *GRPCServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *GRPCServer) Run(ctx context.Context) error {

	s.checkStorage(ctx)

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = listen
	s.mu.Unlock()

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	go func() {
		ticker := time.NewTicker(s.checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gPRC server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.checkStorage(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// checkStorage sets the overall and per-service status from a storage ping.
func (s *GRPCServer) checkStorage(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := s.storage.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "storage not ready", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(common.ServiceName, status)
}

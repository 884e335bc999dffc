// Package grpchealth serves the standard grpc.health.v1 service so that
// orchestrators can probe the process without going through the HTTP API.
package grpchealth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"shipping-allocation-engine/internal/logx"
)

// Check probes one dependency. A non-nil error marks its service NOT_SERVING.
type Check func(ctx context.Context) error

// Server is a gRPC server exposing only the health service.
// The overall status ("") is SERVING while every check passes.
type Server struct {
	addr     string
	checks   map[string]Check
	interval time.Duration
	logger   logx.Logger

	grpc   *grpc.Server
	health *health.Server
	listen func(network, addr string) (net.Listener, error)
}

// New creates a Server on port. Checks are keyed by the service name reported to clients.
func New(port int, checks map[string]Check, interval time.Duration, logger logx.Logger) *Server {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	hs := health.NewServer()
	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{
		addr:     fmt.Sprintf(":%d", port),
		checks:   checks,
		interval: interval,
		logger:   logger,
		grpc:     gs,
		health:   hs,
		listen:   net.Listen,
	}
}

// Run serves until ctx is done, then drains in-flight calls.
func (s *Server) Run(ctx context.Context) error {
	lis, err := s.listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("grpc health listen %s: %w", s.addr, err)
	}
	return s.serve(ctx, lis)
}

func (s *Server) serve(ctx context.Context, lis net.Listener) error {
	s.probe(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("grpc health listening", logx.String("addr", lis.Addr().String()))
		errCh <- s.grpc.Serve(lis)
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			s.grpc.GracefulStop()
			return nil
		case err := <-errCh:
			if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc health serve: %w", err)
			}
			return nil
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe runs every check and publishes the per-service and overall status.
func (s *Server) probe(ctx context.Context) {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := healthpb.HealthCheckResponse_SERVING
	for _, name := range names {
		cctx, cancel := context.WithTimeout(ctx, s.interval/2)
		err := s.checks[name](cctx)
		cancel()

		st := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			overall = st
			s.logger.Warn("health check failed", logx.String("service", name), logx.Err(err))
		}
		s.health.SetServingStatus(name, st)
	}
	s.health.SetServingStatus("", overall)
}

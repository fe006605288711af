package grpc

import (
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"liyu1981.xyz/maternity-monitor-service/pkg/monitor"
)

// Methods carrying a subject_id field that count against the subject limiter.
var LimitedMethods = []string{
	MethodSubmitReading,
	MethodStartSession,
	MethodRecordEvent,
	MethodEndSession,
}

type MonitorServer struct {
	Monitor          *monitor.Monitor
	RateLimiterStore *monitor.RateLimiterStore
	Health           *health.Server
}

func (s *MonitorServer) GetLimiter(subjectID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(subjectID)
	}
}

func (s *MonitorServer) CheckSubjectLimiter(subjectID string) bool {
	limiter := s.GetLimiter(subjectID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

// NewServer builds a grpc.Server with the monitor service, health and
// reflection registered.
func (s *MonitorServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.CreateLoggingInterceptor(),
		s.CreateRateLimitInterceptor(LimitedMethods),
	))
	server := grpc.NewServer(opts...)
	RegisterMonitorServiceServer(server, s)

	if s.Health == nil {
		s.Health = health.NewServer()
	}
	s.Health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.Health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, s.Health)
	reflection.Register(server)

	return server
}

// Shutdown flips health to NOT_SERVING before the listener goes away.
func (s *MonitorServer) Shutdown() {
	if s.Health != nil {
		s.Health.Shutdown()
	}
}

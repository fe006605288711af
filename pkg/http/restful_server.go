package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/maternity-monitor-service/pkg/monitor"
)

type RestfulServer struct {
	Server           *gin.Engine
	Monitor          *monitor.Monitor
	RateLimiterStore *monitor.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(subjectID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	}
	return rs.RateLimiterStore.GetLimiter(subjectID)
}

func (rs *RestfulServer) CheckSubjectLimiter(subjectID string) bool {
	limiter := rs.GetLimiter(subjectID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(subjectID string, subjectRate float64, subjectBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(subjectID, rate.Limit(subjectRate), subjectBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	// the limiter itself is never rate limited
	rs.Server.POST("/subjects/:subject_id/limiter", rs.PostLimiter)

	subjects := rs.Server.Group("/subjects/:subject_id", rs.LimitSubject)
	{
		subjects.POST("/readings", rs.PostReading)
		subjects.GET("/readings", rs.GetReadings)
		subjects.GET("/alerts", rs.GetAlerts)
		subjects.POST("/alerts/:alert_id/ack", rs.AckAlert)
		subjects.GET("/trends", rs.GetTrends)
		subjects.GET("/summary", rs.GetSummary)
		subjects.GET("/thresholds", rs.GetThresholds)
		subjects.POST("/thresholds", rs.PostThresholds)

		subjects.POST("/sessions", rs.PostSession)
		subjects.GET("/sessions", rs.GetSessions)
		subjects.GET("/sessions/active", rs.GetActiveSession)
		subjects.GET("/sessions/:session_id", rs.GetSession)
		subjects.POST("/sessions/:session_id/events", rs.PostSessionEvent)
		subjects.POST("/sessions/:session_id/end", rs.EndSession)
		subjects.GET("/sessions/:session_id/labor", rs.GetLabor)
	}
}

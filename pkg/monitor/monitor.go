//go:generate mockgen -source=monitor.go -destination=mocks/mock_monitor.go -package=mocks

package monitor

import (
	"context"
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/db"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

type IReading interface {
	SubmitReading(ctx context.Context, raw clinical.RawReading) (*models.ReadingResult, error)
	ListReadings(ctx context.Context, subjectID string, limit int) ([]models.VitalReading, error)
	GetLatestReading(ctx context.Context, subjectID string) (*models.VitalReading, error)
}

type IAlert interface {
	GetSubjectAlerts(ctx context.Context, subjectID string, onlyActive bool) ([]models.Alert, error)
	AcknowledgeAlert(ctx context.Context, subjectID string, alertID string) (*models.Alert, error)
	DeliverPendingAlerts(ctx context.Context, limit int) (int, error)
}

type IThresholds interface {
	UpsertThresholds(ctx context.Context, subjectID string, input *models.Thresholds) error
	GetThresholds(ctx context.Context, subjectID string) (clinical.Thresholds, error)
}

type ITrend interface {
	ComputeSubjectTrends(ctx context.Context, subjectID string) ([]clinical.TrendResult, error)
	GetHealthSummary(ctx context.Context, subjectID string) (*clinical.HealthSummary, error)
}

type ISession interface {
	StartSession(ctx context.Context, subjectID string, pregnancyID string, sessionType models.SessionType) (*models.CountingSession, error)
	RecordEvent(ctx context.Context, subjectID string, sessionID string, data models.EventData) (*models.CountingSession, error)
	EndSession(ctx context.Context, subjectID string, sessionID string, notes string) (*models.CountingSession, error)
	GetSession(ctx context.Context, subjectID string, sessionID string) (*models.CountingSession, error)
	GetActiveSession(ctx context.Context, subjectID string, sessionType models.SessionType) (*models.CountingSession, error)
	ListSessions(ctx context.Context, subjectID string, sessionType models.SessionType, limit int) ([]models.CountingSession, error)
	ClassifyLabor(ctx context.Context, subjectID string, sessionID string) (*clinical.LaborAssessment, error)
}

// INotifier hands alerts to whatever delivers them to people. Delivery
// itself happens outside this service.
type INotifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

type Monitor struct {
	Db         db.DB
	Clock      common.Clock
	Notifier   INotifier
	Reading    IReading
	Alert      IAlert
	Thresholds IThresholds
	Trend      ITrend
	Session    ISession
}

type ServiceOpts struct {
	Reading    IReading
	Alert      IAlert
	Thresholds IThresholds
	Trend      ITrend
	Session    ISession
}

// New wires the built-in implementation of every service.
func New(conn db.DB, clock common.Clock, notifier INotifier) *Monitor {
	m := &Monitor{Db: conn, Clock: clock, Notifier: notifier}
	return m.WithServices(ServiceOpts{
		Reading:    m.GetIReading(),
		Alert:      m.GetIAlert(),
		Thresholds: m.GetIThresholds(),
		Trend:      m.GetITrend(),
		Session:    m.GetISession(),
	})
}

func (m *Monitor) WithServices(opts ServiceOpts) *Monitor {
	if opts.Reading != nil {
		m.Reading = opts.Reading
	}
	if opts.Alert != nil {
		m.Alert = opts.Alert
	}
	if opts.Thresholds != nil {
		m.Thresholds = opts.Thresholds
	}
	if opts.Trend != nil {
		m.Trend = opts.Trend
	}
	if opts.Session != nil {
		m.Session = opts.Session
	}
	return m
}

func (m *Monitor) now() time.Time {
	if m.Clock == nil {
		return common.SystemClock()
	}
	return m.Clock().UTC()
}

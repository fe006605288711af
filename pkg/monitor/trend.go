package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

// computeSubjectTrends reports one trend per metric that has data in the
// window. Fetal movement comes from completed kick sessions.
func (m *Monitor) computeSubjectTrends(ctx context.Context, subjectID string) ([]clinical.TrendResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryTrend)
	now := m.now()

	th, err := m.getThresholds(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	opts := clinical.TrendOptionsFrom(th, now)

	readings, err := m.readingsSince(ctx, subjectID, now.Add(-th.TrendWindow))
	if err != nil {
		return nil, err
	}

	trends := []clinical.TrendResult{}
	for _, metric := range clinical.ReadingMetrics {
		series := clinical.SeriesFromReadings(readings, metric)
		if len(series) == 0 {
			continue
		}
		trends = append(trends, clinical.ComputeTrend(series, metric, opts))
	}

	movement, err := movementTrend(m.Db.Conn.WithContext(ctx), subjectID, th, now)
	if err != nil {
		return nil, err
	}
	if movement.Points > 0 {
		trends = append(trends, movement)
	}

	logger.Info("Computed trends for subject", zap.String("subject_id", subjectID), zap.Int("metrics", len(trends)))
	return trends, nil
}

// movementTrend compares the last kick sessions, regardless of age, so a
// subject who counts every few days still gets a baseline. conn may be a
// transaction.
func movementTrend(conn *gorm.DB, subjectID string, th clinical.Thresholds, now time.Time) (clinical.TrendResult, error) {
	sessions, err := recentCompletedSessions(conn, subjectID, models.SessionTypeKick, th.TrendMaxSessions)
	if err != nil {
		return clinical.TrendResult{}, err
	}

	opts := clinical.TrendOptionsFrom(th, now)
	opts.Window = 0
	opts.MaxPoints = th.TrendMaxSessions
	return clinical.ComputeTrend(clinical.SeriesFromKickSessions(sessions), clinical.MetricFetalMovement, opts), nil
}

func (m *Monitor) getHealthSummary(ctx context.Context, subjectID string) (*clinical.HealthSummary, error) {
	var latest *models.VitalReading
	reading, err := m.getLatestReading(ctx, subjectID)
	switch {
	case err == nil:
		latest = reading
	case errors.Is(err, common.ErrNotFound):
	default:
		return nil, err
	}

	alerts, err := m.getSubjectAlerts(ctx, subjectID, true)
	if err != nil {
		return nil, err
	}

	trends, err := m.computeSubjectTrends(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return &clinical.HealthSummary{
		SubjectID:     subjectID,
		Score:         clinical.ComputeHealthScore(latest, alerts, trends),
		Trends:        trends,
		LatestReading: latest,
		ActiveAlerts:  alerts,
		GeneratedAt:   m.now(),
	}, nil
}

type ITrendImpl struct {
	monitor *Monitor
}

func (it *ITrendImpl) ComputeSubjectTrends(ctx context.Context, subjectID string) ([]clinical.TrendResult, error) {
	return it.monitor.computeSubjectTrends(ctx, subjectID)
}

func (it *ITrendImpl) GetHealthSummary(ctx context.Context, subjectID string) (*clinical.HealthSummary, error) {
	return it.monitor.getHealthSummary(ctx, subjectID)
}

func (m *Monitor) GetITrend() ITrend {
	return &ITrendImpl{monitor: m}
}

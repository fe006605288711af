package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

const DefaultReadingListLimit = 100

// submitReading validates, evaluates and stores a reading with its alerts in
// one transaction, then notifies the alerts. A notification failure keeps the
// stored reading, returns it along with an ErrDependency error and leaves the
// alert pending for DeliverPendingAlerts.
func (m *Monitor) submitReading(ctx context.Context, raw clinical.RawReading) (*models.ReadingResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryReading)
	now := m.now()

	var result *models.ReadingResult
	err := m.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		th, err := thresholdsFor(tx, raw.SubjectID)
		if err != nil {
			return err
		}

		reading, err := clinical.ValidateReading(raw, now, th)
		if err != nil {
			logger.Info("Rejected reading", zap.String("subject_id", raw.SubjectID), zap.Error(err))
			return err
		}
		reading.ID = uuid.NewString()
		reading.CreatedAt = now

		logger.Info("Received reading for subject", zap.Reflect("reading", reading))

		previous, err := previousWeighedReading(tx, reading.SubjectID, reading.RecordedAt)
		if err != nil {
			return err
		}

		alerts := clinical.EvaluateAlerts(reading, previous, th)

		if err := tx.Create(&reading).Error; err != nil {
			return common.Dependency("save reading", err)
		}

		logger.Info("Saved reading for subject", zap.String("reading_id", reading.ID), zap.Int("alerts", len(alerts)))

		if err := m.storeAlerts(tx, alerts); err != nil {
			return err
		}

		if alerts == nil {
			alerts = []models.Alert{}
		}
		result = &models.ReadingResult{Reading: reading, Alerts: alerts}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := m.deliverAlerts(ctx, result.Alerts); err != nil {
		return result, err
	}
	return result, nil
}

// previousWeighedReading is the newest earlier reading that carries a weight,
// the baseline of the weight-gain rule.
func previousWeighedReading(conn *gorm.DB, subjectID string, before time.Time) (*models.VitalReading, error) {
	var previous models.VitalReading
	err := conn.
		Where("subject_id = ? AND weight IS NOT NULL AND recorded_at < ?", subjectID, before).
		Order("recorded_at desc").
		First(&previous).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Dependency("load previous reading", err)
	}
	return &previous, nil
}

func (m *Monitor) listReadings(ctx context.Context, subjectID string, limit int) ([]models.VitalReading, error) {
	if limit <= 0 {
		limit = DefaultReadingListLimit
	}

	var readings []models.VitalReading
	err := m.Db.Conn.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("recorded_at desc").
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, common.Dependency("list readings", err)
	}
	return readings, nil
}

// readingsSince returns readings oldest first.
func (m *Monitor) readingsSince(ctx context.Context, subjectID string, since time.Time) ([]models.VitalReading, error) {
	var readings []models.VitalReading
	err := m.Db.Conn.WithContext(ctx).
		Where("subject_id = ? AND recorded_at >= ?", subjectID, since).
		Order("recorded_at asc").
		Find(&readings).Error
	if err != nil {
		return nil, common.Dependency("list readings", err)
	}
	return readings, nil
}

func (m *Monitor) getLatestReading(ctx context.Context, subjectID string) (*models.VitalReading, error) {
	var reading models.VitalReading
	err := m.Db.Conn.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("recorded_at desc").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("latest reading of %s: %w", subjectID, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.Dependency("load latest reading", err)
	}
	return &reading, nil
}

type IReadingImpl struct {
	monitor *Monitor
}

func (ir *IReadingImpl) SubmitReading(ctx context.Context, raw clinical.RawReading) (*models.ReadingResult, error) {
	return ir.monitor.submitReading(ctx, raw)
}

func (ir *IReadingImpl) ListReadings(ctx context.Context, subjectID string, limit int) ([]models.VitalReading, error) {
	return ir.monitor.listReadings(ctx, subjectID, limit)
}

func (ir *IReadingImpl) GetLatestReading(ctx context.Context, subjectID string) (*models.VitalReading, error) {
	return ir.monitor.getLatestReading(ctx, subjectID)
}

func (m *Monitor) GetIReading() IReading {
	return &IReadingImpl{monitor: m}
}

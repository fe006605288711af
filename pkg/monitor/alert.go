package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

// PendingNotificationGrace keeps the sweep away from alerts whose request is
// still delivering them.
const PendingNotificationGrace = time.Minute

const DefaultPendingDeliveryLimit = 100

// storeAlerts persists alerts inside tx. Notification happens after commit,
// see deliverAlerts.
func (m *Monitor) storeAlerts(tx *gorm.DB, alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert)
	now := m.now()

	for idx := range alerts {
		alerts[idx].ID = uuid.NewString()
		alerts[idx].CreatedAt = now
		logger.Info("Alert found", zap.Reflect("alert", alerts[idx]))
	}

	if err := tx.Create(&alerts).Error; err != nil {
		return common.Dependency("save alerts", err)
	}

	for _, alert := range alerts {
		logger.Info("Alert saved", zap.Reflect("alert", alert))
	}
	return nil
}

// deliverAlerts hands committed WARNING and CRITICAL alerts to the notifier
// and stamps NotifiedAt on each one it accepted. Every alert is attempted;
// the first failure is returned and the failed alerts stay pending.
func (m *Monitor) deliverAlerts(ctx context.Context, alerts []models.Alert) error {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert)

	var firstErr error
	for idx := range alerts {
		alert := &alerts[idx]
		if alert.NotifiedAt != nil || len(audienceFor(alert.Severity)) == 0 {
			continue
		}

		if err := m.notify(ctx, *alert); err != nil {
			logger.Warn("Alert notification pending", zap.String("alert_id", alert.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		notifiedAt := m.now()
		err := m.Db.Conn.WithContext(ctx).Model(&models.Alert{}).
			Where("id = ? AND notified_at IS NULL", alert.ID).
			Update("notified_at", notifiedAt).Error
		if err != nil {
			if firstErr == nil {
				firstErr = common.Dependency("mark alert notified", err)
			}
			continue
		}
		alert.NotifiedAt = &notifiedAt
	}
	return firstErr
}

// deliverPendingAlerts retries alerts whose notification failed after their
// reading or session change was committed. Delivery is at least once.
func (m *Monitor) deliverPendingAlerts(ctx context.Context, limit int) (int, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert)
	if limit <= 0 {
		limit = DefaultPendingDeliveryLimit
	}

	var pending []models.Alert
	err := m.Db.Conn.WithContext(ctx).
		Where("notified_at IS NULL AND severity IN ? AND created_at < ?",
			[]models.Severity{models.SeverityWarning, models.SeverityCritical},
			m.now().Add(-PendingNotificationGrace)).
		Order("created_at asc").
		Limit(limit).
		Find(&pending).Error
	if err != nil {
		return 0, common.Dependency("list pending alerts", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	err = m.deliverAlerts(ctx, pending)
	delivered := 0
	for _, alert := range pending {
		if alert.NotifiedAt != nil {
			delivered++
		}
	}
	logger.Info("Delivered pending alerts", zap.Int("pending", len(pending)), zap.Int("delivered", delivered))
	return delivered, err
}

func audienceFor(severity models.Severity) []models.Audience {
	switch severity {
	case models.SeverityCritical:
		return []models.Audience{models.AudienceSubject, models.AudienceCareProvider}
	case models.SeverityWarning:
		return []models.Audience{models.AudienceSubject}
	default:
		return nil
	}
}

func (m *Monitor) notify(ctx context.Context, alert models.Alert) error {
	audience := audienceFor(alert.Severity)
	if len(audience) == 0 {
		return nil
	}
	if m.Notifier == nil {
		return common.Dependency("notify alert", fmt.Errorf("notifier not available"))
	}

	notification := models.Notification{
		SubjectID: alert.SubjectID,
		AlertID:   alert.ID,
		Severity:  alert.Severity,
		Category:  alert.Category,
		Message:   alert.Message,
		Audience:  audience,
		CreatedAt: alert.CreatedAt,
	}
	if alert.SessionID != nil {
		notification.SessionID = *alert.SessionID
	}

	if err := m.Notifier.Notify(ctx, notification); err != nil {
		return common.Dependency("notify alert", err)
	}
	return nil
}

func (m *Monitor) getSubjectAlerts(ctx context.Context, subjectID string, onlyActive bool) ([]models.Alert, error) {
	query := m.Db.Conn.WithContext(ctx).Where("subject_id = ?", subjectID)
	if onlyActive {
		query = query.Where("acknowledged = ?", false)
	}

	var alerts []models.Alert
	if err := query.Order("created_at desc").Find(&alerts).Error; err != nil {
		return nil, common.Dependency("list alerts", err)
	}
	return alerts, nil
}

// acknowledgeAlert is idempotent: acknowledging twice keeps the first
// acknowledgement time.
func (m *Monitor) acknowledgeAlert(ctx context.Context, subjectID string, alertID string) (*models.Alert, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryAlert)
	conn := m.Db.Conn.WithContext(ctx)

	var alert models.Alert
	err := conn.First(&alert, "id = ?", alertID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("alert %s: %w", alertID, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.Dependency("load alert", err)
	}
	if alert.SubjectID != subjectID {
		return nil, fmt.Errorf("alert %s: %w", alertID, common.ErrForbidden)
	}
	if alert.Acknowledged {
		return &alert, nil
	}

	now := m.now()
	err = conn.Model(&alert).Updates(map[string]any{
		"acknowledged":    true,
		"acknowledged_at": now,
	}).Error
	if err != nil {
		return nil, common.Dependency("acknowledge alert", err)
	}
	alert.Acknowledged = true
	alert.AcknowledgedAt = &now

	logger.Info("Alert acknowledged", zap.String("alert_id", alert.ID), zap.String("subject_id", subjectID))
	return &alert, nil
}

type IAlertImpl struct {
	monitor *Monitor
}

func (ia *IAlertImpl) GetSubjectAlerts(ctx context.Context, subjectID string, onlyActive bool) ([]models.Alert, error) {
	return ia.monitor.getSubjectAlerts(ctx, subjectID, onlyActive)
}

func (ia *IAlertImpl) AcknowledgeAlert(ctx context.Context, subjectID string, alertID string) (*models.Alert, error) {
	return ia.monitor.acknowledgeAlert(ctx, subjectID, alertID)
}

func (ia *IAlertImpl) DeliverPendingAlerts(ctx context.Context, limit int) (int, error) {
	return ia.monitor.deliverPendingAlerts(ctx, limit)
}

func (m *Monitor) GetIAlert() IAlert {
	return &IAlertImpl{monitor: m}
}

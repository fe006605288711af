package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

const DefaultSessionListLimit = 50

var eventDataSchema = z.Struct(z.Shape{
	"DurationSeconds": z.Float64().GTE(0),
	"Count":           z.Int().GTE(0),
})

func withEvents(conn *gorm.DB) *gorm.DB {
	return conn.Preload("Events", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("occurred_at asc")
	})
}

func validateSessionKey(subjectID string, sessionType models.SessionType) error {
	verr := common.NewValidationError()
	if subjectID == "" {
		verr.Add("SubjectID", "required")
	}
	if !sessionType.Valid() {
		verr.Add("Type", "must be kick or contraction")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// findActiveSession returns nil when the subject has no ACTIVE session of
// that type.
func findActiveSession(conn *gorm.DB, subjectID string, sessionType models.SessionType) (*models.CountingSession, error) {
	var session models.CountingSession
	err := withEvents(conn).
		Where("subject_id = ? AND type = ? AND status = ?", subjectID, sessionType, models.SessionStatusActive).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Dependency("load active session", err)
	}
	return &session, nil
}

// lockForUpdate makes the next query hold row locks until tx ends. The sqlite
// dialector drops the clause; sqlite already serializes writers.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockSession serializes writers of one session so read-modify-write of its
// counters never loses an update. A missing row is left to loadOwnedSession.
func lockSession(tx *gorm.DB, sessionID string) error {
	var locked models.CountingSession
	err := lockForUpdate(tx).Select("id").Where("id = ?", sessionID).Take(&locked).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return common.Dependency("lock session", err)
	}
	return nil
}

// loadLockedSession locks then loads the session, so the loaded counters are
// the latest committed ones.
func loadLockedSession(tx *gorm.DB, subjectID string, sessionID string) (*models.CountingSession, error) {
	if err := lockSession(tx, sessionID); err != nil {
		return nil, err
	}
	return loadOwnedSession(tx, subjectID, sessionID)
}

func loadOwnedSession(conn *gorm.DB, subjectID string, sessionID string) (*models.CountingSession, error) {
	var session models.CountingSession
	err := withEvents(conn).First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session %s: %w", sessionID, common.ErrNotFound)
	}
	if err != nil {
		return nil, common.Dependency("load session", err)
	}
	if session.SubjectID != subjectID {
		return nil, fmt.Errorf("session %s: %w", sessionID, common.ErrForbidden)
	}
	return &session, nil
}

// recentCompletedSessions returns up to limit sessions, newest first.
func recentCompletedSessions(conn *gorm.DB, subjectID string, sessionType models.SessionType, limit int) ([]models.CountingSession, error) {
	var sessions []models.CountingSession
	err := conn.
		Where("subject_id = ? AND type = ? AND status = ?", subjectID, sessionType, models.SessionStatusCompleted).
		Order("started_at desc").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, common.Dependency("list completed sessions", err)
	}
	return sessions, nil
}

// startSession is idempotent per (subject, type): while a session is ACTIVE
// every start returns it.
func (m *Monitor) startSession(ctx context.Context, subjectID string, pregnancyID string, sessionType models.SessionType) (*models.CountingSession, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategorySession)

	if err := validateSessionKey(subjectID, sessionType); err != nil {
		return nil, err
	}

	existing, err := findActiveSession(m.Db.Conn.WithContext(ctx), subjectID, sessionType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Returning active session", zap.String("session_id", existing.ID), zap.String("subject_id", subjectID))
		return existing, nil
	}

	session := &models.CountingSession{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		PregnancyID: pregnancyID,
		Type:        sessionType,
		Status:      models.SessionStatusActive,
		StartedAt:   m.now(),
		LaborStage:  models.LaborStageNone,
	}
	return m.insertOrGetActive(ctx, session)
}

// insertOrGetActive relies on the partial unique index: when another start
// for the same (subject, type) won the race the insert is a no-op and the
// winner is returned.
func (m *Monitor) insertOrGetActive(ctx context.Context, session *models.CountingSession) (*models.CountingSession, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategorySession)
	conn := m.Db.Conn.WithContext(ctx)

	res := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(session)
	if res.Error != nil {
		return nil, common.Dependency("start session", res.Error)
	}
	if res.RowsAffected == 1 {
		session.Events = []models.SessionEvent{}
		logger.Info("Started session", zap.Reflect("session", session))
		return session, nil
	}

	winner, err := findActiveSession(conn, session.SubjectID, session.Type)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, common.Dependency("start session", fmt.Errorf("concurrent %s session ended before it could be returned", session.Type))
	}

	logger.Info("Lost start race, returning active session", zap.String("session_id", winner.ID), zap.String("subject_id", winner.SubjectID))
	return winner, nil
}

func newSessionEvent(session *models.CountingSession, data models.EventData, now time.Time, th clinical.Thresholds) (models.SessionEvent, error) {
	verr := common.NewValidationError()
	if issues := eventDataSchema.Validate(&data); issues != nil {
		for field := range issues {
			if !strings.HasPrefix(field, "$") {
				verr.Add(field, "must not be negative")
			}
		}
	}

	event := models.SessionEvent{
		ID:         uuid.NewString(),
		SessionID:  session.ID,
		OccurredAt: data.OccurredAt.UTC(),
	}
	if data.OccurredAt.IsZero() {
		event.OccurredAt = now
	}
	if event.OccurredAt.After(now.Add(th.FutureTolerance)) {
		verr.Add("OccurredAt", "in the future")
	}
	if event.OccurredAt.Before(session.StartedAt) {
		verr.Add("OccurredAt", "before the session started")
	}

	switch session.Type {
	case models.SessionTypeKick:
		event.Count = data.Count
		if event.Count == 0 {
			event.Count = 1
		}
	case models.SessionTypeContraction:
		event.Count = 1
		event.DurationSeconds = data.DurationSeconds
		if data.DurationSeconds <= 0 {
			verr.Add("DurationSeconds", "required for contractions")
		}
	}

	if verr.HasErrors() {
		return models.SessionEvent{}, verr
	}
	return event, nil
}

// applyLaborAssessment copies the classification onto the session and, the
// first time the 5-1-1 pattern holds, stores the hospital-readiness alert and
// returns it for delivery. ReadyForHospital stays set once raised so the
// alert fires once per session.
func (m *Monitor) applyLaborAssessment(tx *gorm.DB, session *models.CountingSession, assessment clinical.LaborAssessment, updates map[string]any) ([]models.Alert, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryLabor)

	session.LaborStage = assessment.Stage
	session.MeanIntervalSeconds = assessment.MeanInterval.Seconds()
	session.MeanDurationSeconds = assessment.MeanDuration.Seconds()
	updates["labor_stage"] = session.LaborStage
	updates["mean_interval_seconds"] = session.MeanIntervalSeconds
	updates["mean_duration_seconds"] = session.MeanDurationSeconds

	logger.Info("Classified labor", zap.String("session_id", session.ID), zap.Reflect("assessment", assessment))

	if !assessment.ReadyForHospital || session.ReadyForHospital {
		return nil, nil
	}

	sessionID := session.ID
	alert := models.Alert{
		SubjectID: session.SubjectID,
		SessionID: &sessionID,
		Severity:  models.SeverityCritical,
		Category:  models.AlertCategoryLabor,
		Message: fmt.Sprintf("Contractions every %.1f min lasting %.0f s for %.0f min: time to go to the hospital",
			assessment.MeanInterval.Minutes(), assessment.MeanDuration.Seconds(), assessment.SustainedFor.Minutes()),
		Value: assessment.MeanInterval.Minutes(),
	}
	alerts := []models.Alert{alert}
	if err := m.storeAlerts(tx, alerts); err != nil {
		return nil, err
	}

	session.ReadyForHospital = true
	updates["ready_for_hospital"] = true
	return alerts, nil
}

// saveActiveSession writes updates only while the session is still ACTIVE.
func saveActiveSession(tx *gorm.DB, session *models.CountingSession, updates map[string]any) error {
	res := tx.Model(&models.CountingSession{}).
		Where("id = ? AND status = ?", session.ID, models.SessionStatusActive).
		Updates(updates)
	if res.Error != nil {
		return common.Dependency("save session", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session %s is no longer active: %w", session.ID, common.ErrInvalidState)
	}
	return nil
}

func (m *Monitor) recordEvent(ctx context.Context, subjectID string, sessionID string, data models.EventData) (*models.CountingSession, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategorySession)
	now := m.now()

	var session *models.CountingSession
	var raised []models.Alert
	err := m.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := loadLockedSession(tx, subjectID, sessionID)
		if err != nil {
			return err
		}
		if !s.IsActive() {
			return fmt.Errorf("session %s is %s: %w", s.ID, s.Status, common.ErrInvalidState)
		}

		th, err := thresholdsFor(tx, subjectID)
		if err != nil {
			return err
		}

		event, err := newSessionEvent(s, data, now, th)
		if err != nil {
			return err
		}
		if err := tx.Create(&event).Error; err != nil {
			return common.Dependency("save session event", err)
		}

		s.Events = append(s.Events, event)
		sort.SliceStable(s.Events, func(a, b int) bool { return s.Events[a].OccurredAt.Before(s.Events[b].OccurredAt) })
		s.EventCount++
		s.UpdatedAt = now
		updates := map[string]any{"event_count": s.EventCount, "updated_at": now}

		switch s.Type {
		case models.SessionTypeKick:
			s.TotalKicks += event.Count
			updates["total_kicks"] = s.TotalKicks
			if s.TimeToTargetSeconds == nil && s.TotalKicks >= th.KickTarget {
				elapsed := event.OccurredAt.Sub(s.StartedAt).Seconds()
				s.TimeToTargetSeconds = &elapsed
				updates["time_to_target_seconds"] = elapsed
				logger.Info("Kick target reached", zap.String("session_id", s.ID), zap.Float64("seconds", elapsed))
			}
		case models.SessionTypeContraction:
			assessment := clinical.ClassifyLaborStage(s.Events, now, th)
			raised, err = m.applyLaborAssessment(tx, s, assessment, updates)
			if err != nil {
				return err
			}
		}

		if err := saveActiveSession(tx, s, updates); err != nil {
			return err
		}

		logger.Info("Recorded session event", zap.String("session_id", s.ID), zap.Reflect("event", event))
		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := m.deliverAlerts(ctx, raised); err != nil {
		return session, err
	}
	return session, nil
}

func (m *Monitor) endSession(ctx context.Context, subjectID string, sessionID string, notes string) (*models.CountingSession, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategorySession)
	now := m.now()

	var session *models.CountingSession
	var raised []models.Alert
	err := m.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := loadLockedSession(tx, subjectID, sessionID)
		if err != nil {
			return err
		}
		if !s.IsActive() {
			return fmt.Errorf("session %s is %s: %w", s.ID, s.Status, common.ErrInvalidState)
		}

		th, err := thresholdsFor(tx, subjectID)
		if err != nil {
			return err
		}

		endedAt := now
		s.EndedAt = &endedAt
		s.DurationSeconds = now.Sub(s.StartedAt).Seconds()
		s.Notes = notes
		s.UpdatedAt = now
		updates := map[string]any{
			"status":           models.SessionStatusCompleted,
			"ended_at":         endedAt,
			"duration_seconds": s.DurationSeconds,
			"notes":            notes,
			"updated_at":       now,
		}

		if s.Type == models.SessionTypeContraction {
			assessment := clinical.ClassifyLaborStage(s.Events, now, th)
			raised, err = m.applyLaborAssessment(tx, s, assessment, updates)
			if err != nil {
				return err
			}
		}

		if err := saveActiveSession(tx, s, updates); err != nil {
			return err
		}
		s.Status = models.SessionStatusCompleted

		logger.Info("Ended session", zap.Reflect("session", s))

		if s.Type == models.SessionTypeKick {
			raised, err = m.checkMovementDecline(tx, s, th, now)
			if err != nil {
				return err
			}
		}

		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := m.deliverAlerts(ctx, raised); err != nil {
		return session, err
	}
	return session, nil
}

// checkMovementDecline runs after the session is marked COMPLETED so the
// session itself is part of the series. While an earlier decline alert is
// unacknowledged no new one is raised.
func (m *Monitor) checkMovementDecline(tx *gorm.DB, session *models.CountingSession, th clinical.Thresholds, now time.Time) ([]models.Alert, error) {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryTrend)

	trend, err := movementTrend(tx, session.SubjectID, th, now)
	if err != nil {
		return nil, err
	}
	if !trend.IsDecreasing {
		return nil, nil
	}

	var open int64
	err = tx.Model(&models.Alert{}).
		Where("subject_id = ? AND category = ? AND acknowledged = ?",
			session.SubjectID, models.AlertCategoryReducedMovementTrend, false).
		Count(&open).Error
	if err != nil {
		return nil, common.Dependency("count open decline alerts", err)
	}
	if open > 0 {
		logger.Info("Movement decline already flagged", zap.String("subject_id", session.SubjectID), zap.Int64("open_alerts", open))
		return nil, nil
	}

	sessionID := session.ID
	alert := models.Alert{
		SubjectID: session.SubjectID,
		SessionID: &sessionID,
		Severity:  models.SeverityWarning,
		Category:  models.AlertCategoryReducedMovementTrend,
		Message: fmt.Sprintf("Recent kick counts (avg %.1f) are below %.0f%% of the usual %.1f",
			trend.RecentMean, th.MovementDecline*100, trend.Baseline),
		Value: trend.RecentMean,
	}
	alerts := []models.Alert{alert}
	if err := m.storeAlerts(tx, alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (m *Monitor) getSession(ctx context.Context, subjectID string, sessionID string) (*models.CountingSession, error) {
	return loadOwnedSession(m.Db.Conn.WithContext(ctx), subjectID, sessionID)
}

func (m *Monitor) getActiveSession(ctx context.Context, subjectID string, sessionType models.SessionType) (*models.CountingSession, error) {
	if err := validateSessionKey(subjectID, sessionType); err != nil {
		return nil, err
	}

	session, err := findActiveSession(m.Db.Conn.WithContext(ctx), subjectID, sessionType)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("active %s session of %s: %w", sessionType, subjectID, common.ErrNotFound)
	}
	return session, nil
}

// listSessions returns sessions newest first. An empty type lists both kinds.
func (m *Monitor) listSessions(ctx context.Context, subjectID string, sessionType models.SessionType, limit int) ([]models.CountingSession, error) {
	if sessionType != "" && !sessionType.Valid() {
		verr := common.NewValidationError()
		verr.Add("Type", "must be kick or contraction")
		return nil, verr
	}
	if limit <= 0 {
		limit = DefaultSessionListLimit
	}

	query := withEvents(m.Db.Conn.WithContext(ctx)).Where("subject_id = ?", subjectID)
	if sessionType != "" {
		query = query.Where("type = ?", sessionType)
	}

	var sessions []models.CountingSession
	if err := query.Order("started_at desc").Limit(limit).Find(&sessions).Error; err != nil {
		return nil, common.Dependency("list sessions", err)
	}
	return sessions, nil
}

// classifyLabor assesses an active session as of now and a completed one as
// of its end.
func (m *Monitor) classifyLabor(ctx context.Context, subjectID string, sessionID string) (*clinical.LaborAssessment, error) {
	conn := m.Db.Conn.WithContext(ctx)

	session, err := loadOwnedSession(conn, subjectID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Type != models.SessionTypeContraction {
		return nil, fmt.Errorf("session %s is a %s session: %w", session.ID, session.Type, common.ErrInvalidState)
	}

	th, err := thresholdsFor(conn, subjectID)
	if err != nil {
		return nil, err
	}

	at := m.now()
	if session.EndedAt != nil {
		at = *session.EndedAt
	}
	assessment := clinical.ClassifyLaborStage(session.Events, at, th)
	return &assessment, nil
}

type ISessionImpl struct {
	monitor *Monitor
}

func (is *ISessionImpl) StartSession(ctx context.Context, subjectID string, pregnancyID string, sessionType models.SessionType) (*models.CountingSession, error) {
	return is.monitor.startSession(ctx, subjectID, pregnancyID, sessionType)
}

func (is *ISessionImpl) RecordEvent(ctx context.Context, subjectID string, sessionID string, data models.EventData) (*models.CountingSession, error) {
	return is.monitor.recordEvent(ctx, subjectID, sessionID, data)
}

func (is *ISessionImpl) EndSession(ctx context.Context, subjectID string, sessionID string, notes string) (*models.CountingSession, error) {
	return is.monitor.endSession(ctx, subjectID, sessionID, notes)
}

func (is *ISessionImpl) GetSession(ctx context.Context, subjectID string, sessionID string) (*models.CountingSession, error) {
	return is.monitor.getSession(ctx, subjectID, sessionID)
}

func (is *ISessionImpl) GetActiveSession(ctx context.Context, subjectID string, sessionType models.SessionType) (*models.CountingSession, error) {
	return is.monitor.getActiveSession(ctx, subjectID, sessionType)
}

func (is *ISessionImpl) ListSessions(ctx context.Context, subjectID string, sessionType models.SessionType, limit int) ([]models.CountingSession, error) {
	return is.monitor.listSessions(ctx, subjectID, sessionType, limit)
}

func (is *ISessionImpl) ClassifyLabor(ctx context.Context, subjectID string, sessionID string) (*clinical.LaborAssessment, error) {
	return is.monitor.classifyLabor(ctx, subjectID, sessionID)
}

func (m *Monitor) GetISession() ISession {
	return &ISessionImpl{monitor: m}
}

package monitor

import (
	"context"
	"errors"
	"strings"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

var thresholdsSchema = z.Struct(z.Shape{
	"SystolicWarning":       z.Float64().GTE(0),
	"DiastolicWarning":      z.Float64().GTE(0),
	"SystolicCritical":      z.Float64().GTE(0),
	"DiastolicCritical":     z.Float64().GTE(0),
	"HeartRateLow":          z.Float64().GTE(0),
	"HeartRateHigh":         z.Float64().GTE(0),
	"SpO2Warning":           z.Float64().GTE(0).LTE(100),
	"SpO2Critical":          z.Float64().GTE(0).LTE(100),
	"FeverWarning":          z.Float64().GTE(0),
	"FeverCritical":         z.Float64().GTE(0),
	"GlucoseFasting":        z.Float64().GTE(0),
	"GlucosePostprandial":   z.Float64().GTE(0),
	"WeightGainKgPerWeek":   z.Float64().GTE(0),
	"FetalMovementMin":      z.Int().GTE(0),
	"FetalMovementFromWeek": z.Int().GTE(0).LTE(clinical.MaxGestationalWeek),
	"KickTarget":            z.Int().GTE(0),
	"TrendHysteresis":       z.Float64().GTE(0).LTE(1),
	"MovementDecline":       z.Float64().GTE(0).LTE(1),
})

// thresholdRangeMessages covers the fields with an upper bound; the rest only
// reject negatives.
var thresholdRangeMessages = map[string]string{
	"SpO2Warning":           "must be between 0 and 100",
	"SpO2Critical":          "must be between 0 and 100",
	"FetalMovementFromWeek": "must be a gestational week",
	"TrendHysteresis":       "must be between 0 and 1",
	"MovementDecline":       "must be between 0 and 1",
}

func (m *Monitor) upsertThresholds(ctx context.Context, subjectID string, input *models.Thresholds) error {
	logger := common.GetCategoryLogger(common.LoggerNameMonitorCore, common.LoggerCategoryThresholds)

	verr := common.NewValidationError()
	if subjectID == "" {
		verr.Add("SubjectID", "required")
	}
	if input == nil {
		verr.Add("Thresholds", "required")
	} else if issues := thresholdsSchema.Validate(input); issues != nil {
		for field := range issues {
			if strings.HasPrefix(field, "$") {
				continue
			}
			if msg, ok := thresholdRangeMessages[field]; ok {
				verr.Add(field, msg)
			} else {
				verr.Add(field, "must not be negative")
			}
		}
	} else {
		// bounds are checked after merging, so an override cannot cross a default
		for field, reason := range clinical.DefaultThresholds().WithOverrides(input).Conflicts() {
			verr.Add(field, reason)
		}
	}
	if verr.HasErrors() {
		return verr
	}

	thresholds := *input
	thresholds.SubjectID = subjectID
	thresholds.UpdatedAt = m.now()

	logger.Info("Received thresholds for subject", zap.Reflect("thresholds", thresholds))

	err := m.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subject_id"}},
		UpdateAll: true,
	}).Create(&thresholds).Error
	if err != nil {
		return common.Dependency("upsert thresholds", err)
	}

	logger.Info("Upserted thresholds for subject", zap.Reflect("thresholds", thresholds))
	return nil
}

// thresholdsFor returns the defaults merged with the subject's overrides.
// conn may be a transaction.
func thresholdsFor(conn *gorm.DB, subjectID string) (clinical.Thresholds, error) {
	var overrides models.Thresholds
	err := conn.First(&overrides, "subject_id = ?", subjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clinical.DefaultThresholds(), nil
	}
	if err != nil {
		return clinical.Thresholds{}, common.Dependency("load thresholds", err)
	}
	return clinical.DefaultThresholds().WithOverrides(&overrides), nil
}

func (m *Monitor) getThresholds(ctx context.Context, subjectID string) (clinical.Thresholds, error) {
	return thresholdsFor(m.Db.Conn.WithContext(ctx), subjectID)
}

type IThresholdsImpl struct {
	monitor *Monitor
}

func (it *IThresholdsImpl) UpsertThresholds(ctx context.Context, subjectID string, input *models.Thresholds) error {
	return it.monitor.upsertThresholds(ctx, subjectID, input)
}

func (it *IThresholdsImpl) GetThresholds(ctx context.Context, subjectID string) (clinical.Thresholds, error) {
	return it.monitor.getThresholds(ctx, subjectID)
}

func (m *Monitor) GetIThresholds() IThresholds {
	return &IThresholdsImpl{monitor: m}
}

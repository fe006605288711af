package monitor

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
	_ "liyu1981.xyz/maternity-monitor-service/pkg/testing"
)

func TestSubmitReading(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, mockNotifier := GetMockMonitorWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	subjectID := uuid.NewString()

	var notified models.Notification
	mockNotifier.
		EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.Notification) error {
			notified = n
			return nil
		}).
		Times(1)

	result, err := monitorObj.Reading.SubmitReading(context.Background(), clinical.RawReading{
		SubjectID:       subjectID,
		Systolic:        f(150),
		Diastolic:       f(95),
		GestationalWeek: 32,
		RecordedAt:      baseTime.Add(-time.Minute),
	})
	require.NoError(t, err)

	require.Len(t, result.Alerts, 1)
	alert := result.Alerts[0]
	assert.Equal(t, models.SeverityWarning, alert.Severity)
	assert.Equal(t, models.AlertCategoryBloodPressure, alert.Category)
	require.NotNil(t, alert.ReadingID)
	assert.Equal(t, result.Reading.ID, *alert.ReadingID)

	assert.Equal(t, alert.ID, notified.AlertID)
	assert.Equal(t, []models.Audience{models.AudienceSubject}, notified.Audience)

	// Verify that the reading and alert were inserted
	var saved models.VitalReading
	err = monitorObj.Db.Conn.Where("subject_id = ?", subjectID).First(&saved).Error
	require.NoError(t, err)
	assert.Equal(t, 150.0, *saved.Systolic)
	assert.Nil(t, saved.HeartRate)

	alerts, err := monitorObj.Alert.GetSubjectAlerts(context.Background(), subjectID, false)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

func TestSubmitReading_NoAlerts(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, mockNotifier := GetMockMonitorWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)

	result, err := monitorObj.Reading.SubmitReading(context.Background(), clinical.RawReading{
		SubjectID:       uuid.NewString(),
		Systolic:        f(118),
		Diastolic:       f(76),
		HeartRate:       f(80),
		GestationalWeek: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
	assert.Equal(t, baseTime, result.Reading.RecordedAt)
}

func TestSubmitReading_Invalid(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, mockNotifier := GetMockMonitorWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)

	subjectID := uuid.NewString()
	_, err := monitorObj.Reading.SubmitReading(context.Background(), clinical.RawReading{
		SubjectID:       subjectID,
		Systolic:        f(170),
		GestationalWeek: 50,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	var count int64
	monitorObj.Db.Conn.Model(&models.VitalReading{}).Where("subject_id = ?", subjectID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSubmitReading_NotifierFailureKeepsReading(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, clock, mockNotifier := GetMockMonitorWithMemorySqliteDialector(t, true)
	defer ctrl.Finish()

	ctx := context.Background()
	subjectID := uuid.NewString()

	var delivered []string
	gomock.InOrder(
		mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n models.Notification) error {
				delivered = append(delivered, n.AlertID)
				return nil
			}),
		mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
			Return(errors.New("broker down")),
	)

	result, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		Systolic:        f(150),
		Diastolic:       f(95),
		HeartRate:       f(120),
		GestationalWeek: 34,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDependency))
	require.NotNil(t, result)
	require.Len(t, result.Alerts, 2)

	// the reading and both alerts are committed, only the second is pending
	var readings int64
	monitorObj.Db.Conn.Model(&models.VitalReading{}).Where("subject_id = ?", subjectID).Count(&readings)
	assert.Equal(t, int64(1), readings)

	var stored []models.Alert
	require.NoError(t, monitorObj.Db.Conn.Where("subject_id = ?", subjectID).Find(&stored).Error)
	require.Len(t, stored, 2)

	require.Len(t, delivered, 1)
	var pendingID string
	for _, alert := range stored {
		if alert.ID == delivered[0] {
			assert.NotNil(t, alert.NotifiedAt)
		} else {
			assert.Nil(t, alert.NotifiedAt)
			pendingID = alert.ID
		}
	}
	require.NotEmpty(t, pendingID)

	// too fresh for the sweep
	mockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n models.Notification) error {
			delivered = append(delivered, n.AlertID)
			return nil
		}).
		AnyTimes()

	_, err = monitorObj.Alert.DeliverPendingAlerts(ctx, 0)
	require.NoError(t, err)
	assert.NotContains(t, delivered, pendingID)

	clock.Advance(2 * PendingNotificationGrace)
	_, err = monitorObj.Alert.DeliverPendingAlerts(ctx, 0)
	require.NoError(t, err)
	assert.Contains(t, delivered, pendingID)

	var pending models.Alert
	require.NoError(t, monitorObj.Db.Conn.First(&pending, "id = ?", pendingID).Error)
	assert.NotNil(t, pending.NotifiedAt)

	// delivered alerts are not sent again
	before := len(delivered)
	_, err = monitorObj.Alert.DeliverPendingAlerts(ctx, 0)
	require.NoError(t, err)
	for _, id := range delivered[before:] {
		assert.NotEqual(t, pendingID, id)
	}
}

func TestSubmitReading_WeightGainUsesPreviousWeighedReading(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	subjectID := uuid.NewString()

	_, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		Weight:          f(70),
		GestationalWeek: 30,
		RecordedAt:      baseTime.Add(-7 * 24 * time.Hour),
	})
	require.NoError(t, err)

	// no weight, so not a baseline
	_, err = monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		HeartRate:       f(82),
		GestationalWeek: 30,
		RecordedAt:      baseTime.Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	result, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		Weight:          f(72),
		GestationalWeek: 31,
		RecordedAt:      baseTime,
	})
	require.NoError(t, err)

	require.Len(t, result.Alerts, 1)
	assert.Equal(t, models.AlertCategoryWeightGain, result.Alerts[0].Category)
	assert.InDelta(t, 2.0, result.Alerts[0].Value, 0.001)
}

func TestSubmitReading_SubjectThresholds(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	subjectID := uuid.NewString()

	err := monitorObj.Thresholds.UpsertThresholds(ctx, subjectID, &models.Thresholds{
		SystolicWarning:  130,
		DiastolicWarning: 85,
	})
	require.NoError(t, err)

	result, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		Systolic:        f(135),
		Diastolic:       f(80),
		GestationalWeek: 28,
	})
	require.NoError(t, err)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "Blood pressure 135/80 elevated (threshold 130/85)", result.Alerts[0].Message)
}

func TestListAndLatestReadings(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	subjectID := uuid.NewString()

	_, err := monitorObj.Reading.GetLatestReading(ctx, subjectID)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	for day := 3; day >= 1; day-- {
		_, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
			SubjectID:       subjectID,
			HeartRate:       f(float64(70 + day)),
			GestationalWeek: 25,
			RecordedAt:      baseTime.Add(-time.Duration(day) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	readings, err := monitorObj.Reading.ListReadings(ctx, subjectID, 2)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 71.0, *readings[0].HeartRate)
	assert.Equal(t, 72.0, *readings[1].HeartRate)

	latest, err := monitorObj.Reading.GetLatestReading(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 71.0, *latest.HeartRate)
}

func TestSubmitReading_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	subjectID := uuid.NewString()
	_, err := monitorObj.Reading.SubmitReading(context.Background(), clinical.RawReading{
		SubjectID:       subjectID,
		SpO2:            f(89),
		GestationalWeek: 36,
	})
	require.NoError(t, err)

	logs := ParseLogs(buf)

	for _, msg := range []string{"Alert found", "Alert saved"} {
		found := false
		for _, log := range logs {
			lobj := log.(map[string]any)
			alert, ok := lobj["alert"].(map[string]any)
			if ok &&
				lobj["category"] == "alert" &&
				lobj["logger"] == "monitor_core" &&
				lobj["msg"] == msg &&
				alert["SubjectID"] == subjectID &&
				alert["Category"] == "oxygen_saturation" &&
				alert["Severity"] == "CRITICAL" {
				found = true
			}
		}
		assert.True(t, found, msg)
	}

	found := false
	for _, log := range logs {
		lobj := log.(map[string]any)
		if lobj["logger"] == "notifier" && lobj["msg"] == "Notification" {
			found = true
		}
	}
	assert.True(t, found)
}

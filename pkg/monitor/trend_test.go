package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	_ "liyu1981.xyz/maternity-monitor-service/pkg/testing"
)

func seedBloodPressure(t *testing.T, monitorObj *Monitor, subjectID string, systolic []float64) {
	t.Helper()
	for idx, sys := range systolic {
		_, err := monitorObj.Reading.SubmitReading(context.Background(), clinical.RawReading{
			SubjectID:       subjectID,
			Systolic:        f(sys),
			Diastolic:       f(70),
			GestationalWeek: 30,
			RecordedAt:      baseTime.Add(-time.Duration(len(systolic)-idx) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}
}

func trendFor(trends []clinical.TrendResult, metric clinical.Metric) (clinical.TrendResult, bool) {
	for _, tr := range trends {
		if tr.Metric == metric {
			return tr, true
		}
	}
	return clinical.TrendResult{}, false
}

func TestComputeSubjectTrends(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	subjectID := uuid.NewString()
	seedBloodPressure(t, monitorObj, subjectID, []float64{110, 112, 114, 125, 128, 130})

	trends, err := monitorObj.Trend.ComputeSubjectTrends(context.Background(), subjectID)
	require.NoError(t, err)
	require.Len(t, trends, 2, "only measured metrics are reported")

	systolic, ok := trendFor(trends, clinical.MetricSystolic)
	require.True(t, ok)
	assert.Equal(t, clinical.DirectionRising, systolic.Direction)
	assert.Equal(t, 6, systolic.Points)

	diastolic, ok := trendFor(trends, clinical.MetricDiastolic)
	require.True(t, ok)
	assert.Equal(t, clinical.DirectionStable, diastolic.Direction)
}

func TestComputeSubjectTrends_WindowExcludesOldReadings(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	subjectID := uuid.NewString()

	_, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		HeartRate:       f(70),
		GestationalWeek: 20,
		RecordedAt:      baseTime.Add(-30 * 24 * time.Hour),
	})
	require.NoError(t, err)

	trends, err := monitorObj.Trend.ComputeSubjectTrends(ctx, subjectID)
	require.NoError(t, err)
	assert.Empty(t, trends)
}

func TestGetHealthSummary(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	ctx := context.Background()
	subjectID := uuid.NewString()
	seedBloodPressure(t, monitorObj, subjectID, []float64{110, 112, 114, 125, 128, 130})

	summary, err := monitorObj.Trend.GetHealthSummary(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 95, summary.Score.Score)
	assert.Equal(t, clinical.BandExcellent, summary.Score.Band)
	assert.Equal(t, []clinical.Metric{clinical.MetricSystolic}, summary.Score.UnfavorableOnes)
	require.NotNil(t, summary.LatestReading)
	assert.Equal(t, 130.0, *summary.LatestReading.Systolic)
	assert.Empty(t, summary.ActiveAlerts)

	// a critical reading drops the score and shows up as an active alert
	result, err := monitorObj.Reading.SubmitReading(ctx, clinical.RawReading{
		SubjectID:       subjectID,
		Systolic:        f(165),
		Diastolic:       f(112),
		GestationalWeek: 30,
	})
	require.NoError(t, err)

	summary, err = monitorObj.Trend.GetHealthSummary(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Score.ActiveAlerts)
	assert.Less(t, summary.Score.Score, 95-clinical.PenaltyCritical+1)

	// acknowledging it restores the alert penalty
	_, err = monitorObj.Alert.AcknowledgeAlert(ctx, subjectID, result.Alerts[0].ID)
	require.NoError(t, err)

	summary, err = monitorObj.Trend.GetHealthSummary(ctx, subjectID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Score.ActiveAlerts)
	assert.Empty(t, summary.ActiveAlerts)
}

func TestGetHealthSummary_NoData(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, monitorObj, _, _ := GetMockMonitorWithMemorySqliteDialector(t, false)
	defer ctrl.Finish()

	summary, err := monitorObj.Trend.GetHealthSummary(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Score.Score)
	assert.Nil(t, summary.LatestReading)
	assert.Nil(t, summary.Score.LatestReadingAt)
	assert.Empty(t, summary.Trends)
	assert.Equal(t, baseTime, summary.GeneratedAt)
}

package clinical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

func dailySeries(values ...float64) []TrendPoint {
	series := make([]TrendPoint, len(values))
	start := baseTime.Add(-time.Duration(len(values)) * 24 * time.Hour)
	for idx, v := range values {
		series[idx] = TrendPoint{At: start.Add(time.Duration(idx) * 24 * time.Hour), Value: v}
	}
	return series
}

func testTrendOptions() TrendOptions {
	return TrendOptionsFrom(DefaultThresholds(), baseTime)
}

func TestComputeTrend_Directions(t *testing.T) {
	opts := testTrendOptions()

	cases := []struct {
		name   string
		metric Metric
		series []TrendPoint
		want   Direction
	}{
		{"stable pressure", MetricSystolic, dailySeries(120, 122, 119, 121, 120, 123), DirectionStable},
		{"rising pressure", MetricSystolic, dailySeries(118, 120, 122, 135, 140, 142), DirectionRising},
		{"falling heart rate", MetricHeartRate, dailySeries(95, 92, 90, 75, 72, 70), DirectionFalling},
		{"gaining weight", MetricWeight, dailySeries(60, 60, 61, 67, 68, 69), DirectionGaining},
		{"losing weight", MetricWeight, dailySeries(70, 70, 70, 62, 61, 61), DirectionLosing},
		{"within hysteresis", MetricWeight, dailySeries(70, 70, 70, 72, 72, 72), DirectionStable},
		{"single point", MetricSystolic, dailySeries(150), DirectionStable},
		{"empty", MetricSystolic, nil, DirectionStable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ComputeTrend(tc.series, tc.metric, opts)
			assert.Equal(t, tc.want, result.Direction)
			assert.Equal(t, tc.metric, result.Metric)
		})
	}
}

func TestComputeTrend_Idempotent(t *testing.T) {
	series := dailySeries(118, 120, 122, 135, 140, 142)
	opts := testTrendOptions()

	first := ComputeTrend(series, MetricSystolic, opts)
	second := ComputeTrend(series, MetricSystolic, opts)
	assert.Equal(t, first, second)

	// the input slice is left untouched
	assert.Equal(t, dailySeries(118, 120, 122, 135, 140, 142), series)
}

func TestComputeTrend_OddLengthAndOrdering(t *testing.T) {
	series := dailySeries(100, 200, 130)
	result := ComputeTrend(series, MetricGlucose, testTrendOptions())
	// middle point is excluded: 100 vs 130
	assert.InDelta(t, 0.3, result.Change, 1e-9)
	assert.Equal(t, DirectionRising, result.Direction)

	reversed := []TrendPoint{series[2], series[1], series[0]}
	assert.Equal(t, result, ComputeTrend(reversed, MetricGlucose, testTrendOptions()))
}

func TestComputeTrend_Window(t *testing.T) {
	opts := testTrendOptions()
	opts.Window = 3 * 24 * time.Hour

	// the old high values fall outside the window
	series := dailySeries(160, 160, 160, 120, 121, 120)
	result := ComputeTrend(series, MetricSystolic, opts)
	assert.Equal(t, 3, result.Points)
	assert.Equal(t, DirectionStable, result.Direction)

	opts.Window = 0
	opts.MaxPoints = 2
	result = ComputeTrend(series, MetricSystolic, opts)
	assert.Equal(t, 2, result.Points)
}

func TestComputeTrend_MovementDecline(t *testing.T) {
	opts := testTrendOptions()

	result := ComputeTrend(dailySeries(8, 8, 8, 8, 8, 5, 4), MetricFetalMovement, opts)
	assert.True(t, result.IsDecreasing)
	assert.InDelta(t, 8.0, result.Baseline, 1e-9)
	assert.InDelta(t, 4.5, result.RecentMean, 1e-9)
	assert.Equal(t, DirectionFalling, result.Direction)
	assert.True(t, result.Unfavorable())

	// a single quiet session is not enough
	result = ComputeTrend(dailySeries(8, 8, 8, 8, 8, 8, 4), MetricFetalMovement, opts)
	assert.False(t, result.IsDecreasing)

	// too little history
	result = ComputeTrend(dailySeries(5, 4), MetricFetalMovement, opts)
	assert.False(t, result.IsDecreasing)
}

func TestTrendResult_Unfavorable(t *testing.T) {
	assert.True(t, TrendResult{Metric: MetricSystolic, Direction: DirectionRising}.Unfavorable())
	assert.False(t, TrendResult{Metric: MetricSystolic, Direction: DirectionFalling}.Unfavorable())
	assert.True(t, TrendResult{Metric: MetricSpO2, Direction: DirectionFalling}.Unfavorable())
	assert.True(t, TrendResult{Metric: MetricWeight, Direction: DirectionLosing}.Unfavorable())
	assert.False(t, TrendResult{Metric: MetricWeight, Direction: DirectionGaining}.Unfavorable())
	assert.False(t, TrendResult{Metric: MetricGlucose, Direction: DirectionStable}.Unfavorable())
}

func TestSeriesBuilders(t *testing.T) {
	readings := []models.VitalReading{
		reading(func(r *models.VitalReading) { r.Weight = f(70); r.RecordedAt = baseTime.Add(-48 * time.Hour) }),
		reading(func(r *models.VitalReading) { r.HeartRate = f(80) }),
		reading(func(r *models.VitalReading) { r.Weight = f(71) }),
	}

	series := SeriesFromReadings(readings, MetricWeight)
	require.Len(t, series, 2)
	assert.Equal(t, 70.0, series[0].Value)
	assert.Equal(t, 71.0, series[1].Value)

	sessions := []models.CountingSession{
		{Type: models.SessionTypeKick, Status: models.SessionStatusCompleted, TotalKicks: 9, StartedAt: baseTime.Add(-time.Hour)},
		{Type: models.SessionTypeKick, Status: models.SessionStatusActive, TotalKicks: 2, StartedAt: baseTime},
		{Type: models.SessionTypeContraction, Status: models.SessionStatusCompleted, StartedAt: baseTime},
	}
	kicks := SeriesFromKickSessions(sessions)
	require.Len(t, kicks, 1)
	assert.Equal(t, 9.0, kicks[0].Value)
}

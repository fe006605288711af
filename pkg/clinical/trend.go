package clinical

import (
	"math"
	"sort"
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

type Metric string

const (
	MetricSystolic      Metric = "systolic"
	MetricDiastolic     Metric = "diastolic"
	MetricHeartRate     Metric = "heart_rate"
	MetricWeight        Metric = "weight"
	MetricGlucose       Metric = "glucose"
	MetricTemperature   Metric = "temperature"
	MetricSpO2          Metric = "spo2"
	MetricFetalMovement Metric = "fetal_movement"
)

// ReadingMetrics are the metrics tracked from vital readings. Fetal movement
// is tracked from kick sessions instead.
var ReadingMetrics = []Metric{
	MetricSystolic,
	MetricDiastolic,
	MetricHeartRate,
	MetricWeight,
	MetricGlucose,
	MetricTemperature,
	MetricSpO2,
}

type Direction string

const (
	DirectionStable  Direction = "stable"
	DirectionRising  Direction = "rising"
	DirectionFalling Direction = "falling"
	DirectionGaining Direction = "gaining"
	DirectionLosing  Direction = "losing"
)

// TrendPoint is one value per bucket (a reading or a session). It is never
// stored.
type TrendPoint struct {
	At    time.Time
	Value float64
}

type TrendOptions struct {
	Now time.Time
	// Window drops points older than Now-Window. Zero keeps everything.
	Window time.Duration
	// MaxPoints keeps only the newest points. Zero keeps everything.
	MaxPoints    int
	Hysteresis   float64
	DeclineRatio float64
}

func TrendOptionsFrom(th Thresholds, now time.Time) TrendOptions {
	return TrendOptions{
		Now:          now,
		Window:       th.TrendWindow,
		Hysteresis:   th.TrendHysteresis,
		DeclineRatio: th.MovementDecline,
	}
}

type TrendResult struct {
	Metric    Metric    `json:"metric"`
	Direction Direction `json:"direction"`
	// Change is (newest-half mean - oldest-half mean) / |oldest-half mean|.
	Change float64 `json:"change"`
	Points int     `json:"points"`

	// fetal movement only
	IsDecreasing bool    `json:"is_decreasing"`
	RecentMean   float64 `json:"recent_mean,omitempty"`
	Baseline     float64 `json:"baseline,omitempty"`
}

// Unfavorable reports whether the direction is the adverse one for the
// metric.
func (r TrendResult) Unfavorable() bool {
	switch r.Metric {
	case MetricSpO2:
		return r.Direction == DirectionFalling
	case MetricWeight:
		return r.Direction == DirectionLosing
	case MetricFetalMovement:
		return r.Direction == DirectionFalling || r.IsDecreasing
	default:
		return r.Direction == DirectionRising
	}
}

// ComputeTrend classifies the direction of a series (newest last) by
// comparing the mean of the oldest half of the window with the mean of the
// newest half. Changes within the hysteresis are stable.
func ComputeTrend(series []TrendPoint, metric Metric, opts TrendOptions) TrendResult {
	points := windowed(series, opts)
	result := TrendResult{Metric: metric, Direction: DirectionStable, Points: len(points)}

	if len(points) >= 2 {
		half := len(points) / 2
		oldMean := common.Mean(values(points[:half]))
		newMean := common.Mean(values(points[len(points)-half:]))

		result.Change = relativeChange(oldMean, newMean)
		if math.Abs(result.Change) > opts.Hysteresis {
			result.Direction = direction(metric, result.Change)
		}
	}

	if metric == MetricFetalMovement {
		result.IsDecreasing, result.RecentMean, result.Baseline = movementDecline(points, opts.DeclineRatio)
	}

	return result
}

// movementDecline compares the two most recent sessions against ratio times
// the average of the rest of the window. Both sessions must fall below the
// bar so a single quiet session does not raise it.
func movementDecline(points []TrendPoint, ratio float64) (decreasing bool, recentMean float64, baseline float64) {
	if len(points) < 3 {
		return false, 0, 0
	}

	recent := points[len(points)-2:]
	recentMean = common.Mean(values(recent))
	baseline = common.Mean(values(points[:len(points)-2]))

	bar := ratio * baseline
	decreasing = recent[0].Value < bar && recent[1].Value < bar
	return decreasing, recentMean, baseline
}

func windowed(series []TrendPoint, opts TrendOptions) []TrendPoint {
	points := make([]TrendPoint, len(series))
	copy(points, series)
	sort.SliceStable(points, func(a, b int) bool { return points[a].At.Before(points[b].At) })

	if opts.Window > 0 && !opts.Now.IsZero() {
		from := opts.Now.Add(-opts.Window)
		points = common.Filter(points, func(p TrendPoint) bool { return !p.At.Before(from) })
	}

	if opts.MaxPoints > 0 && len(points) > opts.MaxPoints {
		points = points[len(points)-opts.MaxPoints:]
	}
	return points
}

func values(points []TrendPoint) []float64 {
	return common.Mapper(points, func(p TrendPoint) float64 { return p.Value })
}

func relativeChange(oldMean, newMean float64) float64 {
	if oldMean == 0 {
		switch {
		case newMean > 0:
			return 1
		case newMean < 0:
			return -1
		default:
			return 0
		}
	}
	return (newMean - oldMean) / math.Abs(oldMean)
}

func direction(metric Metric, change float64) Direction {
	if metric == MetricWeight {
		if change > 0 {
			return DirectionGaining
		}
		return DirectionLosing
	}
	if change > 0 {
		return DirectionRising
	}
	return DirectionFalling
}

// MetricValue extracts one metric from a reading.
func MetricValue(r *models.VitalReading, metric Metric) (float64, bool) {
	var v *float64
	switch metric {
	case MetricSystolic:
		v = r.Systolic
	case MetricDiastolic:
		v = r.Diastolic
	case MetricHeartRate:
		v = r.HeartRate
	case MetricWeight:
		v = r.Weight
	case MetricGlucose:
		v = r.Glucose
	case MetricTemperature:
		v = r.Temperature
	case MetricSpO2:
		v = r.SpO2
	case MetricFetalMovement:
		if r.FetalMovements != nil {
			return float64(*r.FetalMovements), true
		}
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SeriesFromReadings builds the series for one metric, skipping readings that
// did not measure it.
func SeriesFromReadings(readings []models.VitalReading, metric Metric) []TrendPoint {
	series := make([]TrendPoint, 0, len(readings))
	for idx := range readings {
		if v, ok := MetricValue(&readings[idx], metric); ok {
			series = append(series, TrendPoint{At: readings[idx].RecordedAt, Value: v})
		}
	}
	return series
}

// SeriesFromKickSessions turns completed kick sessions into one point per
// session, valued by its kick total.
func SeriesFromKickSessions(sessions []models.CountingSession) []TrendPoint {
	series := make([]TrendPoint, 0, len(sessions))
	for _, s := range sessions {
		if s.Type != models.SessionTypeKick || s.Status != models.SessionStatusCompleted {
			continue
		}
		series = append(series, TrendPoint{At: s.StartedAt, Value: float64(s.TotalKicks)})
	}
	return series
}

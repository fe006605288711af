// Package clinical holds the rule-based self-monitoring engine: reading
// validation, alert rules, trend classification, the health score and labor
// stage classification. Everything here is a pure function of its inputs;
// time arrives as an argument.
//
// The numbers below are product defaults, not clinical cutoffs. Subjects can
// override most of them through models.Thresholds.
package clinical

import (
	"fmt"
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

const (
	DefaultSystolicWarning   = 140.0
	DefaultDiastolicWarning  = 90.0
	DefaultSystolicCritical  = 160.0
	DefaultDiastolicCritical = 110.0

	DefaultHeartRateLow  = 60.0
	DefaultHeartRateHigh = 100.0

	DefaultSpO2Warning  = 95.0
	DefaultSpO2Critical = 90.0

	DefaultFeverWarning  = 38.0
	DefaultFeverCritical = 39.0

	// mg/dL
	DefaultGlucoseFasting      = 95.0
	DefaultGlucosePostprandial = 140.0

	DefaultWeightGainKgPerWeek = 1.0

	DefaultFetalMovementMin      = 10
	DefaultFetalMovementFromWeek = 28

	MinGestationalWeek = 0
	MaxGestationalWeek = 45

	DefaultFutureTolerance = 5 * time.Minute

	DefaultTrendHysteresis   = 0.10
	DefaultTrendWindow       = 14 * 24 * time.Hour
	DefaultTrendMaxSessions  = 10
	DefaultMovementDecline   = 0.70
	DefaultKickTarget        = 10
	DefaultLaborSampleSize   = 5
	DefaultLaborMinimumCount = 3
)

// LaborBand is an inclusive interval/duration window for one labor stage.
type LaborBand struct {
	MinInterval time.Duration
	MaxInterval time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration
}

var (
	DefaultEarlyBand = LaborBand{
		MinInterval: 5 * time.Minute,
		MaxInterval: 20 * time.Minute,
		MinDuration: 30 * time.Second,
		MaxDuration: 45 * time.Second,
	}
	DefaultActiveBand = LaborBand{
		MinInterval: 3 * time.Minute,
		MaxInterval: 5 * time.Minute,
		MinDuration: 45 * time.Second,
		MaxDuration: 60 * time.Second,
	}
	DefaultTransitionBand = LaborBand{
		MinInterval: 2 * time.Minute,
		MaxInterval: 3 * time.Minute,
		MinDuration: 60 * time.Second,
		MaxDuration: 90 * time.Second,
	}
)

const (
	DefaultLaborTolerance = 30 * time.Second
	Default511Sustain     = time.Hour
	Default511Slack       = 5 * time.Minute
)

// Thresholds is the full, resolved rule table used by the engine.
type Thresholds struct {
	SystolicWarning   float64
	DiastolicWarning  float64
	SystolicCritical  float64
	DiastolicCritical float64

	HeartRateLow  float64
	HeartRateHigh float64

	SpO2Warning  float64
	SpO2Critical float64

	FeverWarning  float64
	FeverCritical float64

	GlucoseFasting      float64
	GlucosePostprandial float64

	WeightGainKgPerWeek float64

	FetalMovementMin      int
	FetalMovementFromWeek int

	FutureTolerance time.Duration

	TrendHysteresis  float64
	TrendWindow      time.Duration
	TrendMaxSessions int
	MovementDecline  float64

	KickTarget int

	LaborSampleSize   int
	LaborMinimumCount int
	EarlyBand         LaborBand
	ActiveBand        LaborBand
	TransitionBand    LaborBand
	LaborTolerance    time.Duration
	ReadySustain      time.Duration
	ReadySlack        time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SystolicWarning:       DefaultSystolicWarning,
		DiastolicWarning:      DefaultDiastolicWarning,
		SystolicCritical:      DefaultSystolicCritical,
		DiastolicCritical:     DefaultDiastolicCritical,
		HeartRateLow:          DefaultHeartRateLow,
		HeartRateHigh:         DefaultHeartRateHigh,
		SpO2Warning:           DefaultSpO2Warning,
		SpO2Critical:          DefaultSpO2Critical,
		FeverWarning:          DefaultFeverWarning,
		FeverCritical:         DefaultFeverCritical,
		GlucoseFasting:        DefaultGlucoseFasting,
		GlucosePostprandial:   DefaultGlucosePostprandial,
		WeightGainKgPerWeek:   DefaultWeightGainKgPerWeek,
		FetalMovementMin:      DefaultFetalMovementMin,
		FetalMovementFromWeek: DefaultFetalMovementFromWeek,
		FutureTolerance:       DefaultFutureTolerance,
		TrendHysteresis:       DefaultTrendHysteresis,
		TrendWindow:           DefaultTrendWindow,
		TrendMaxSessions:      DefaultTrendMaxSessions,
		MovementDecline:       DefaultMovementDecline,
		KickTarget:            DefaultKickTarget,
		LaborSampleSize:       DefaultLaborSampleSize,
		LaborMinimumCount:     DefaultLaborMinimumCount,
		EarlyBand:             DefaultEarlyBand,
		ActiveBand:            DefaultActiveBand,
		TransitionBand:        DefaultTransitionBand,
		LaborTolerance:        DefaultLaborTolerance,
		ReadySustain:          Default511Sustain,
		ReadySlack:            Default511Slack,
	}
}

type thresholdPair struct {
	lower, upper           string
	lowerValue, upperValue float64
}

// Conflicts lists the bounds that are out of order, keyed by the lower field
// of each pair.
func (t Thresholds) Conflicts() map[string]string {
	pairs := []thresholdPair{
		{"SystolicWarning", "SystolicCritical", t.SystolicWarning, t.SystolicCritical},
		{"DiastolicWarning", "DiastolicCritical", t.DiastolicWarning, t.DiastolicCritical},
		{"HeartRateLow", "HeartRateHigh", t.HeartRateLow, t.HeartRateHigh},
		{"SpO2Critical", "SpO2Warning", t.SpO2Critical, t.SpO2Warning},
		{"FeverWarning", "FeverCritical", t.FeverWarning, t.FeverCritical},
	}

	conflicts := map[string]string{}
	for _, p := range pairs {
		if p.lowerValue >= p.upperValue {
			conflicts[p.lower] = fmt.Sprintf("must be below %s (%g)", p.upper, p.upperValue)
		}
	}
	return conflicts
}

// WithOverrides applies the non-zero fields of a stored override row.
func (t Thresholds) WithOverrides(o *models.Thresholds) Thresholds {
	if o == nil {
		return t
	}

	setFloat := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	setInt := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}

	setFloat(&t.SystolicWarning, o.SystolicWarning)
	setFloat(&t.DiastolicWarning, o.DiastolicWarning)
	setFloat(&t.SystolicCritical, o.SystolicCritical)
	setFloat(&t.DiastolicCritical, o.DiastolicCritical)
	setFloat(&t.HeartRateLow, o.HeartRateLow)
	setFloat(&t.HeartRateHigh, o.HeartRateHigh)
	setFloat(&t.SpO2Warning, o.SpO2Warning)
	setFloat(&t.SpO2Critical, o.SpO2Critical)
	setFloat(&t.FeverWarning, o.FeverWarning)
	setFloat(&t.FeverCritical, o.FeverCritical)
	setFloat(&t.GlucoseFasting, o.GlucoseFasting)
	setFloat(&t.GlucosePostprandial, o.GlucosePostprandial)
	setFloat(&t.WeightGainKgPerWeek, o.WeightGainKgPerWeek)
	setInt(&t.FetalMovementMin, o.FetalMovementMin)
	setInt(&t.FetalMovementFromWeek, o.FetalMovementFromWeek)
	setInt(&t.KickTarget, o.KickTarget)
	setFloat(&t.TrendHysteresis, o.TrendHysteresis)
	setFloat(&t.MovementDecline, o.MovementDecline)

	return t
}

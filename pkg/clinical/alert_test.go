package clinical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

func TestEvaluateAlerts_WarningBloodPressure(t *testing.T) {
	r := reading(withBP(150, 95), func(r *models.VitalReading) { r.HeartRate = f(75) })

	alerts := EvaluateAlerts(r, nil, DefaultThresholds())

	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, models.AlertCategoryBloodPressure, alerts[0].Category)
	assert.Equal(t, 150.0, alerts[0].Value)
	assert.Equal(t, "subject-1", alerts[0].SubjectID)
	require.NotNil(t, alerts[0].ReadingID)
	assert.Equal(t, "reading-1", *alerts[0].ReadingID)
	assert.Equal(t, "Blood pressure 150/95 elevated (threshold 140/90)", alerts[0].Message)
}

func TestEvaluateAlerts_CriticalBloodPressureWins(t *testing.T) {
	th := DefaultThresholds()

	for sys := 100.0; sys <= 200; sys += 5 {
		for dia := 60.0; dia <= 130; dia += 5 {
			alerts := EvaluateAlerts(reading(withBP(sys, dia)), nil, th)

			var bp []models.Alert
			for _, a := range alerts {
				if a.Category == models.AlertCategoryBloodPressure {
					bp = append(bp, a)
				}
			}

			switch {
			case sys >= 160 || dia >= 110:
				require.Len(t, bp, 1, "%v/%v", sys, dia)
				assert.Equal(t, models.SeverityCritical, bp[0].Severity, "%v/%v", sys, dia)
			case sys >= 140 || dia >= 90:
				require.Len(t, bp, 1, "%v/%v", sys, dia)
				assert.Equal(t, models.SeverityWarning, bp[0].Severity, "%v/%v", sys, dia)
			default:
				assert.Empty(t, bp, "%v/%v", sys, dia)
			}
		}
	}
}

func TestEvaluateAlerts_OnlyDiastolic(t *testing.T) {
	r := reading(func(r *models.VitalReading) { r.Diastolic = f(112) })

	alerts := EvaluateAlerts(r, nil, DefaultThresholds())
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 112.0, alerts[0].Value)
}

func TestEvaluateAlerts_Vitals(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		name     string
		reading  models.VitalReading
		category models.AlertCategory
		severity models.Severity
	}{
		{"low heart rate", reading(func(r *models.VitalReading) { r.HeartRate = f(55) }), models.AlertCategoryHeartRate, models.SeverityWarning},
		{"high heart rate", reading(func(r *models.VitalReading) { r.HeartRate = f(110) }), models.AlertCategoryHeartRate, models.SeverityWarning},
		{"low spo2", reading(func(r *models.VitalReading) { r.SpO2 = f(93) }), models.AlertCategoryOxygenSaturation, models.SeverityWarning},
		{"very low spo2", reading(func(r *models.VitalReading) { r.SpO2 = f(88) }), models.AlertCategoryOxygenSaturation, models.SeverityCritical},
		{"fever", reading(func(r *models.VitalReading) { r.Temperature = f(38.2) }), models.AlertCategoryTemperature, models.SeverityWarning},
		{"high fever", reading(func(r *models.VitalReading) { r.Temperature = f(39.4) }), models.AlertCategoryTemperature, models.SeverityCritical},
		{"postprandial glucose", reading(func(r *models.VitalReading) { r.Glucose = f(150) }), models.AlertCategoryGlucose, models.SeverityWarning},
		{"fasting glucose", reading(func(r *models.VitalReading) { r.Glucose = f(100); r.Fasting = true }), models.AlertCategoryGlucose, models.SeverityWarning},
		{"reduced movement", reading(func(r *models.VitalReading) { r.FetalMovements = i(6) }), models.AlertCategoryFetalMovement, models.SeverityWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := EvaluateAlerts(tc.reading, nil, th)
			require.Len(t, alerts, 1)
			assert.Equal(t, tc.category, alerts[0].Category)
			assert.Equal(t, tc.severity, alerts[0].Severity)
		})
	}
}

func TestEvaluateAlerts_NoAlerts(t *testing.T) {
	th := DefaultThresholds()

	normal := reading(withBP(118, 76), func(r *models.VitalReading) {
		r.HeartRate = f(80)
		r.SpO2 = f(98)
		r.Temperature = f(36.8)
		r.Glucose = f(100)
		r.FetalMovements = i(12)
	})
	assert.Empty(t, EvaluateAlerts(normal, nil, th))

	// 100 mg/dL is fine after a meal and high when fasting
	fasting := normal
	fasting.Fasting = true
	assert.Equal(t, []models.AlertCategory{models.AlertCategoryGlucose}, categories(EvaluateAlerts(fasting, nil, th)))

	// movement counting does not apply before the configured week
	early := reading(func(r *models.VitalReading) { r.GestationalWeek = 20; r.FetalMovements = i(2) })
	assert.Empty(t, EvaluateAlerts(early, nil, th))
}

func TestEvaluateAlerts_WeightGain(t *testing.T) {
	th := DefaultThresholds()

	previous := reading(func(r *models.VitalReading) {
		r.ID = "reading-0"
		r.Weight = f(70)
		r.RecordedAt = baseTime.Add(-7 * 24 * time.Hour)
	})

	fast := reading(func(r *models.VitalReading) { r.Weight = f(71.5) })
	alerts := EvaluateAlerts(fast, &previous, th)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertCategoryWeightGain, alerts[0].Category)
	assert.InDelta(t, 1.5, alerts[0].Value, 1e-9)

	slow := reading(func(r *models.VitalReading) { r.Weight = f(70.5) })
	assert.Empty(t, EvaluateAlerts(slow, &previous, th))

	loss := reading(func(r *models.VitalReading) { r.Weight = f(68) })
	assert.Empty(t, EvaluateAlerts(loss, &previous, th))

	// a previous reading that is not earlier is ignored
	later := previous
	later.RecordedAt = baseTime.Add(time.Hour)
	assert.Empty(t, EvaluateAlerts(fast, &later, th))
}

func TestWeightGainRate_ShortSpan(t *testing.T) {
	previous := reading(func(r *models.VitalReading) {
		r.Weight = f(70)
		r.RecordedAt = baseTime.Add(-time.Hour)
	})
	current := reading(func(r *models.VitalReading) { r.Weight = f(70.2) })

	rate, ok := WeightGainRate(&current, &previous)
	require.True(t, ok)
	// one hour is floored to one day: 0.2 kg/day = 1.4 kg/week
	assert.InDelta(t, 1.4, rate, 1e-9)

	_, ok = WeightGainRate(&current, nil)
	assert.False(t, ok)
}

func TestEvaluateAlerts_OrderAndOverrides(t *testing.T) {
	r := reading(withBP(165, 100), func(r *models.VitalReading) {
		r.HeartRate = f(120)
		r.SpO2 = f(92)
		r.FetalMovements = i(3)
	})

	alerts := EvaluateAlerts(r, nil, DefaultThresholds())
	assert.Equal(t, []models.AlertCategory{
		models.AlertCategoryBloodPressure,
		models.AlertCategoryHeartRate,
		models.AlertCategoryOxygenSaturation,
		models.AlertCategoryFetalMovement,
	}, categories(alerts))

	th := DefaultThresholds().WithOverrides(&models.Thresholds{HeartRateHigh: 125, FetalMovementMin: 2})
	alerts = EvaluateAlerts(r, nil, th)
	assert.Equal(t, []models.AlertCategory{
		models.AlertCategoryBloodPressure,
		models.AlertCategoryOxygenSaturation,
	}, categories(alerts))

	// same input, same output
	assert.Equal(t, alerts, EvaluateAlerts(r, nil, th))
}

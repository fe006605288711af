package clinical

import (
	"fmt"
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

const week = 7 * 24 * time.Hour

// minWeightGainSpan keeps two readings taken minutes apart from producing an
// absurd kg/week rate.
const minWeightGainSpan = 24 * time.Hour

type rule func(r *models.VitalReading, previous *models.VitalReading, th Thresholds) *models.Alert

// rules run in this order; the output keeps it.
var rules = []rule{
	bloodPressureRule,
	heartRateRule,
	oxygenSaturationRule,
	temperatureRule,
	glucoseRule,
	weightGainRule,
	fetalMovementRule,
}

// EvaluateAlerts runs the rule table against one reading. previous is the
// subject's latest earlier reading that carried a weight, or nil. Each
// category yields at most one alert, the most severe band that matched.
func EvaluateAlerts(reading models.VitalReading, previous *models.VitalReading, th Thresholds) []models.Alert {
	alerts := []models.Alert{}
	for _, check := range rules {
		if alert := check(&reading, previous, th); alert != nil {
			alert.SubjectID = reading.SubjectID
			if reading.ID != "" {
				readingID := reading.ID
				alert.ReadingID = &readingID
			}
			alerts = append(alerts, *alert)
		}
	}
	return alerts
}

func newAlert(severity models.Severity, category models.AlertCategory, value float64, format string, args ...any) *models.Alert {
	return &models.Alert{
		Severity: severity,
		Category: category,
		Value:    value,
		Message:  fmt.Sprintf(format, args...),
	}
}

func bloodPressureRule(r *models.VitalReading, _ *models.VitalReading, th Thresholds) *models.Alert {
	if r.Systolic == nil && r.Diastolic == nil {
		return nil
	}

	var sys, dia float64
	if r.Systolic != nil {
		sys = *r.Systolic
	}
	if r.Diastolic != nil {
		dia = *r.Diastolic
	}

	value := sys
	if r.Systolic == nil {
		value = dia
	}

	switch {
	case sys >= th.SystolicCritical || dia >= th.DiastolicCritical:
		return newAlert(models.SeverityCritical, models.AlertCategoryBloodPressure, value,
			"Blood pressure %.0f/%.0f severely elevated (threshold %.0f/%.0f)", sys, dia, th.SystolicCritical, th.DiastolicCritical)
	case sys >= th.SystolicWarning || dia >= th.DiastolicWarning:
		return newAlert(models.SeverityWarning, models.AlertCategoryBloodPressure, value,
			"Blood pressure %.0f/%.0f elevated (threshold %.0f/%.0f)", sys, dia, th.SystolicWarning, th.DiastolicWarning)
	}
	return nil
}

func heartRateRule(r *models.VitalReading, _ *models.VitalReading, th Thresholds) *models.Alert {
	if r.HeartRate == nil {
		return nil
	}

	hr := *r.HeartRate
	switch {
	case hr < th.HeartRateLow:
		return newAlert(models.SeverityWarning, models.AlertCategoryHeartRate, hr,
			"Heart rate %.0f below %.0f bpm", hr, th.HeartRateLow)
	case hr > th.HeartRateHigh:
		return newAlert(models.SeverityWarning, models.AlertCategoryHeartRate, hr,
			"Heart rate %.0f above %.0f bpm", hr, th.HeartRateHigh)
	}
	return nil
}

func oxygenSaturationRule(r *models.VitalReading, _ *models.VitalReading, th Thresholds) *models.Alert {
	if r.SpO2 == nil {
		return nil
	}

	spo2 := *r.SpO2
	switch {
	case spo2 < th.SpO2Critical:
		return newAlert(models.SeverityCritical, models.AlertCategoryOxygenSaturation, spo2,
			"Oxygen saturation %.0f%% below %.0f%%", spo2, th.SpO2Critical)
	case spo2 < th.SpO2Warning:
		return newAlert(models.SeverityWarning, models.AlertCategoryOxygenSaturation, spo2,
			"Oxygen saturation %.0f%% below %.0f%%", spo2, th.SpO2Warning)
	}
	return nil
}

func temperatureRule(r *models.VitalReading, _ *models.VitalReading, th Thresholds) *models.Alert {
	if r.Temperature == nil {
		return nil
	}

	temp := *r.Temperature
	switch {
	case temp >= th.FeverCritical:
		return newAlert(models.SeverityCritical, models.AlertCategoryTemperature, temp,
			"Temperature %.1f at or above %.1f", temp, th.FeverCritical)
	case temp >= th.FeverWarning:
		return newAlert(models.SeverityWarning, models.AlertCategoryTemperature, temp,
			"Temperature %.1f at or above %.1f", temp, th.FeverWarning)
	}
	return nil
}

func glucoseRule(r *models.VitalReading, _ *models.VitalReading, th Thresholds) *models.Alert {
	if r.Glucose == nil {
		return nil
	}

	cutoff, label := th.GlucosePostprandial, "postprandial"
	if r.Fasting {
		cutoff, label = th.GlucoseFasting, "fasting"
	}

	glucose := *r.Glucose
	if glucose > cutoff {
		return newAlert(models.SeverityWarning, models.AlertCategoryGlucose, glucose,
			"Glucose %.0f mg/dL above %s cutoff %.0f", glucose, label, cutoff)
	}
	return nil
}

// WeightGainRate returns kg per week between two weighed readings. ok is
// false when either weight is missing or previous is not earlier.
func WeightGainRate(r *models.VitalReading, previous *models.VitalReading) (rate float64, ok bool) {
	if previous == nil || r.Weight == nil || previous.Weight == nil {
		return 0, false
	}
	if !previous.RecordedAt.Before(r.RecordedAt) {
		return 0, false
	}

	span := r.RecordedAt.Sub(previous.RecordedAt)
	if span < minWeightGainSpan {
		span = minWeightGainSpan
	}

	return (*r.Weight - *previous.Weight) / (float64(span) / float64(week)), true
}

func weightGainRule(r *models.VitalReading, previous *models.VitalReading, th Thresholds) *models.Alert {
	rate, ok := WeightGainRate(r, previous)
	if !ok || rate <= th.WeightGainKgPerWeek {
		return nil
	}
	return newAlert(models.SeverityWarning, models.AlertCategoryWeightGain, rate,
		"Weight gain %.2f kg/week above %.2f kg/week", rate, th.WeightGainKgPerWeek)
}

func fetalMovementRule(r *models.VitalReading, _ *models.VitalReading, th Thresholds) *models.Alert {
	if r.FetalMovements == nil || r.GestationalWeek < th.FetalMovementFromWeek {
		return nil
	}

	count := *r.FetalMovements
	if count < th.FetalMovementMin {
		return newAlert(models.SeverityWarning, models.AlertCategoryFetalMovement, float64(count),
			"Fetal movements %d below minimum %d at week %d", count, th.FetalMovementMin, r.GestationalWeek)
	}
	return nil
}

package clinical

import (
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func i(v int) *int { return &v }

func reading(opts ...func(*models.VitalReading)) models.VitalReading {
	r := models.VitalReading{
		ID:              "reading-1",
		SubjectID:       "subject-1",
		GestationalWeek: 30,
		RecordedAt:      baseTime,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withBP(sys, dia float64) func(*models.VitalReading) {
	return func(r *models.VitalReading) {
		r.Systolic = f(sys)
		r.Diastolic = f(dia)
	}
}

func categories(alerts []models.Alert) []models.AlertCategory {
	out := make([]models.AlertCategory, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.Category)
	}
	return out
}

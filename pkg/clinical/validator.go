package clinical

import (
	"strings"
	"time"

	z "github.com/Oudwins/zog"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

// RawReading is a reading as submitted, before validation.
type RawReading struct {
	SubjectID       string
	PregnancyID     string
	Systolic        *float64
	Diastolic       *float64
	HeartRate       *float64
	Weight          *float64
	Temperature     *float64
	Glucose         *float64
	Fasting         bool
	SpO2            *float64
	FetalMovements  *int
	GestationalWeek int
	RecordedAt      time.Time
}

// Required() inside Ptr rejects a provided zero, nil stays allowed.
var rawReadingSchema = z.Struct(z.Shape{
	"SubjectID":       z.String().Min(1).Required(),
	"GestationalWeek": z.Int().GTE(MinGestationalWeek).LTE(MaxGestationalWeek),
	"Systolic":        z.Ptr(z.Float64().Required().GT(0)),
	"Diastolic":       z.Ptr(z.Float64().Required().GT(0)),
	"HeartRate":       z.Ptr(z.Float64().Required().GT(0)),
	"Weight":          z.Ptr(z.Float64().Required().GT(0)),
	"Temperature":     z.Ptr(z.Float64().Required().GT(0)),
	"Glucose":         z.Ptr(z.Float64().Required().GT(0)),
	"SpO2":            z.Ptr(z.Float64().Required().GT(0).LTE(100)),
	"FetalMovements":  z.Ptr(z.Int().GTE(0)),
})

// ValidateReading range-checks a raw reading and returns the normalized
// reading. A zero RecordedAt becomes now. The store assigns the ID.
func ValidateReading(raw RawReading, now time.Time, th Thresholds) (models.VitalReading, error) {
	verr := common.NewValidationError()

	if issues := rawReadingSchema.Validate(&raw); issues != nil {
		for field := range issues {
			if strings.HasPrefix(field, "$") {
				continue
			}
			verr.Add(field, "missing or out of range")
		}
	}

	recordedAt := raw.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = now
	}
	if recordedAt.After(now.Add(th.FutureTolerance)) {
		verr.Add("RecordedAt", "is in the future")
	}

	if verr.HasErrors() {
		return models.VitalReading{}, verr
	}

	return models.VitalReading{
		SubjectID:       raw.SubjectID,
		PregnancyID:     raw.PregnancyID,
		Systolic:        raw.Systolic,
		Diastolic:       raw.Diastolic,
		HeartRate:       raw.HeartRate,
		Weight:          raw.Weight,
		Temperature:     raw.Temperature,
		Glucose:         raw.Glucose,
		Fasting:         raw.Fasting,
		SpO2:            raw.SpO2,
		FetalMovements:  raw.FetalMovements,
		GestationalWeek: raw.GestationalWeek,
		RecordedAt:      recordedAt.UTC(),
	}, nil
}

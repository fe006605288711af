package models

import "time"

type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

// Rank orders severities so the most severe band can win.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

type AlertCategory string

const (
	AlertCategoryBloodPressure        AlertCategory = "blood_pressure"
	AlertCategoryHeartRate            AlertCategory = "heart_rate"
	AlertCategoryOxygenSaturation     AlertCategory = "oxygen_saturation"
	AlertCategoryTemperature          AlertCategory = "temperature"
	AlertCategoryGlucose              AlertCategory = "glucose"
	AlertCategoryWeightGain           AlertCategory = "weight_gain"
	AlertCategoryFetalMovement        AlertCategory = "fetal_movement"
	AlertCategoryReducedMovementTrend AlertCategory = "reduced_movement_trend"
	AlertCategoryLabor                AlertCategory = "labor"
)

// VitalReading is written once and never updated. Optional vitals are nil
// when the subject did not measure them.
type VitalReading struct {
	ID              string `gorm:"primaryKey"`
	SubjectID       string `gorm:"index"`
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
	RecordedAt      time.Time `gorm:"index"`
	CreatedAt       time.Time
}

type Alert struct {
	ID             string `gorm:"primaryKey"`
	SubjectID      string `gorm:"index"`
	ReadingID      *string
	SessionID      *string       `gorm:"index"`
	Severity       Severity      `gorm:"type:varchar(10);check:severity IN ('INFO','WARNING','CRITICAL')"`
	Category       AlertCategory `gorm:"type:varchar(32)"`
	Message        string
	Value          float64
	Acknowledged   bool
	AcknowledgedAt *time.Time
	// NotifiedAt stays nil until the notifier accepted the alert; WARNING and
	// CRITICAL alerts with a nil NotifiedAt are pending delivery.
	NotifiedAt *time.Time `gorm:"index"`
	CreatedAt  time.Time  `gorm:"index"`
}

// Thresholds holds a subject's overrides of the clinical defaults. A zero
// field means "use the default".
type Thresholds struct {
	SubjectID             string `gorm:"primaryKey"`
	SystolicWarning       float64
	DiastolicWarning      float64
	SystolicCritical      float64
	DiastolicCritical     float64
	HeartRateLow          float64
	HeartRateHigh         float64
	SpO2Warning           float64
	SpO2Critical          float64
	FeverWarning          float64
	FeverCritical         float64
	GlucoseFasting        float64
	GlucosePostprandial   float64
	WeightGainKgPerWeek   float64
	FetalMovementMin      int
	FetalMovementFromWeek int
	KickTarget            int
	// TrendHysteresis and MovementDecline are ratios in (0, 1].
	TrendHysteresis float64
	MovementDecline float64
	UpdatedAt       time.Time
}

type Audience string

const (
	AudienceSubject      Audience = "subject"
	AudienceCareProvider Audience = "care_provider"
)

// Notification is what the core asks its delivery collaborator to surface.
type Notification struct {
	SubjectID string        `json:"subject_id"`
	AlertID   string        `json:"alert_id"`
	SessionID string        `json:"session_id,omitempty"`
	Severity  Severity      `json:"severity"`
	Category  AlertCategory `json:"category"`
	Message   string        `json:"message"`
	Audience  []Audience    `json:"audience"`
	CreatedAt time.Time     `json:"created_at"`
}

// ReadingResult is a stored reading with the alerts it produced.
type ReadingResult struct {
	Reading VitalReading `json:"reading"`
	Alerts  []Alert      `json:"alerts"`
}

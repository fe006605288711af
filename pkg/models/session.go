package models

import "time"

type SessionType string

const (
	SessionTypeKick        SessionType = "kick"
	SessionTypeContraction SessionType = "contraction"
)

func (t SessionType) Valid() bool {
	return t == SessionTypeKick || t == SessionTypeContraction
}

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

type LaborStage string

const (
	LaborStageNone       LaborStage = "NONE"
	LaborStageEarly      LaborStage = "EARLY"
	LaborStageActive     LaborStage = "ACTIVE"
	LaborStageTransition LaborStage = "TRANSITION"
)

// Rank orders stages from least to most advanced.
func (s LaborStage) Rank() int {
	switch s {
	case LaborStageEarly:
		return 1
	case LaborStageActive:
		return 2
	case LaborStageTransition:
		return 3
	default:
		return 0
	}
}

// CountingSession is a kick-count or contraction timing session. At most one
// ACTIVE session per (subject, type) exists; the store enforces it with a
// partial unique index.
type CountingSession struct {
	ID                  string        `gorm:"primaryKey"`
	SubjectID           string        `gorm:"index"`
	PregnancyID         string
	Type                SessionType   `gorm:"type:varchar(16)"`
	Status              SessionStatus `gorm:"type:varchar(16);index"`
	StartedAt           time.Time
	EndedAt             *time.Time
	DurationSeconds     float64
	EventCount          int
	TotalKicks          int
	TimeToTargetSeconds *float64
	MeanIntervalSeconds float64
	MeanDurationSeconds float64
	LaborStage          LaborStage `gorm:"type:varchar(16)"`
	ReadyForHospital    bool
	Notes               string
	Events              []SessionEvent `gorm:"foreignKey:SessionID;references:ID"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (s *CountingSession) IsActive() bool {
	return s.Status == SessionStatusActive
}

// SessionEvent is one kick (Count) or one contraction (DurationSeconds).
type SessionEvent struct {
	ID              string `gorm:"primaryKey"`
	SessionID       string `gorm:"index"`
	OccurredAt      time.Time
	DurationSeconds float64
	Count           int
}

// EventData is what a client records into an active session. OccurredAt
// defaults to now, Count to 1 for kicks; contractions need DurationSeconds.
type EventData struct {
	OccurredAt      time.Time `json:"occurred_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	Count           int       `json:"count"`
}

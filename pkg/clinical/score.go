package clinical

import (
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

const (
	maxScore = 100

	PenaltyInfo             = 0
	PenaltyWarning          = 10
	PenaltyCritical         = 30
	PenaltyUnfavorableTrend = 5

	ExcellentFrom = 80
	GoodFrom      = 60
)

type Band string

const (
	BandExcellent      Band = "Excellent"
	BandGood           Band = "Good"
	BandNeedsAttention Band = "Needs Attention"
)

type HealthScore struct {
	Score           int        `json:"score"`
	Band            Band       `json:"band"`
	ActiveAlerts    int        `json:"active_alerts"`
	UnfavorableOnes []Metric   `json:"unfavorable_trends"`
	LatestReadingAt *time.Time `json:"latest_reading_at,omitempty"`
}

// ComputeHealthScore folds the current picture into a 0-100 presentation
// score. It is a view over its inputs and is recomputed on every request.
// Acknowledged alerts no longer count.
func ComputeHealthScore(latest *models.VitalReading, alerts []models.Alert, trends []TrendResult) HealthScore {
	score := maxScore
	active := 0

	for _, a := range alerts {
		if a.Acknowledged {
			continue
		}
		active++
		score -= severityPenalty(a.Severity)
	}

	unfavorable := []Metric{}
	for _, tr := range trends {
		if tr.Unfavorable() {
			unfavorable = append(unfavorable, tr.Metric)
			score -= PenaltyUnfavorableTrend
		}
	}

	if score < 0 {
		score = 0
	}

	result := HealthScore{
		Score:           score,
		Band:            BandFor(score),
		ActiveAlerts:    active,
		UnfavorableOnes: unfavorable,
	}
	if latest != nil {
		at := latest.RecordedAt
		result.LatestReadingAt = &at
	}
	return result
}

func severityPenalty(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return PenaltyCritical
	case models.SeverityWarning:
		return PenaltyWarning
	default:
		return PenaltyInfo
	}
}

func BandFor(score int) Band {
	switch {
	case score >= ExcellentFrom:
		return BandExcellent
	case score >= GoodFrom:
		return BandGood
	default:
		return BandNeedsAttention
	}
}

// HealthSummary is the dashboard view. It is derived on demand and never
// stored.
type HealthSummary struct {
	SubjectID     string               `json:"subject_id"`
	Score         HealthScore          `json:"score"`
	Trends        []TrendResult        `json:"trends"`
	LatestReading *models.VitalReading `json:"latest_reading,omitempty"`
	ActiveAlerts  []models.Alert       `json:"active_alerts"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

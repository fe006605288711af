package clinical

import (
	"sort"
	"time"

	"liyu1981.xyz/maternity-monitor-service/pkg/common"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

type LaborAssessment struct {
	Stage            models.LaborStage `json:"stage"`
	ReadyForHospital bool              `json:"ready_for_hospital"`
	MeanInterval     time.Duration     `json:"mean_interval"`
	MeanDuration     time.Duration     `json:"mean_duration"`
	SampleSize       int               `json:"sample_size"`
	// SustainedFor is how long the trailing active pattern has held.
	SustainedFor time.Duration `json:"sustained_for"`
}

// ClassifyLaborStage reads the most recent contractions (start time and
// duration) and matches the mean interval and mean duration against the
// stage bands. Interval and duration are staged separately and the less
// advanced of the two is reported.
//
// ReadyForHospital follows 5-1-1: every contraction in the trailing run is
// within the ACTIVE/TRANSITION bands, the run covers about an hour and the
// last contraction is recent relative to now.
func ClassifyLaborStage(events []models.SessionEvent, now time.Time, th Thresholds) LaborAssessment {
	sorted := make([]models.SessionEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].OccurredAt.Before(sorted[b].OccurredAt) })

	assessment := LaborAssessment{Stage: models.LaborStageNone}
	if len(sorted) < th.LaborMinimumCount || len(sorted) < 2 {
		return assessment
	}

	sample := sorted
	if len(sample) > th.LaborSampleSize {
		sample = sample[len(sample)-th.LaborSampleSize:]
	}

	intervals := make([]float64, 0, len(sample)-1)
	for idx := 1; idx < len(sample); idx++ {
		intervals = append(intervals, float64(sample[idx].OccurredAt.Sub(sample[idx-1].OccurredAt)))
	}
	durations := common.Mapper(sample, func(e models.SessionEvent) float64 {
		return float64(secondsToDuration(e.DurationSeconds))
	})

	assessment.SampleSize = len(sample)
	assessment.MeanInterval = time.Duration(common.Mean(intervals))
	assessment.MeanDuration = time.Duration(common.Mean(durations))

	intervalStage := stageForInterval(assessment.MeanInterval, th)
	durationStage := stageForDuration(assessment.MeanDuration, th)
	assessment.Stage = intervalStage
	if durationStage.Rank() < intervalStage.Rank() {
		assessment.Stage = durationStage
	}

	assessment.SustainedFor = sustainedActivePattern(sorted, th)
	latest := sorted[len(sorted)-1].OccurredAt
	current := now.Sub(latest) <= th.ActiveBand.MaxInterval+th.LaborTolerance
	assessment.ReadyForHospital = current && assessment.SustainedFor >= th.ReadySustain-th.ReadySlack

	return assessment
}

func stageForInterval(interval time.Duration, th Thresholds) models.LaborStage {
	switch {
	case interval <= th.TransitionBand.MaxInterval+th.LaborTolerance:
		return models.LaborStageTransition
	case interval <= th.ActiveBand.MaxInterval+th.LaborTolerance:
		return models.LaborStageActive
	default:
		return models.LaborStageEarly
	}
}

func stageForDuration(duration time.Duration, th Thresholds) models.LaborStage {
	switch {
	case duration >= th.TransitionBand.MinDuration:
		return models.LaborStageTransition
	case duration >= th.ActiveBand.MinDuration:
		return models.LaborStageActive
	default:
		return models.LaborStageEarly
	}
}

func activeGap(gap time.Duration, th Thresholds) bool {
	return gap >= th.TransitionBand.MinInterval-th.LaborTolerance &&
		gap <= th.ActiveBand.MaxInterval+th.LaborTolerance
}

func activeDuration(e models.SessionEvent, th Thresholds) bool {
	duration := secondsToDuration(e.DurationSeconds)
	return duration >= th.ActiveBand.MinDuration && duration <= th.TransitionBand.MaxDuration
}

// sustainedActivePattern walks back from the newest contraction while every
// gap and duration stays in the ACTIVE/TRANSITION bands and returns the span
// the run covers.
func sustainedActivePattern(sorted []models.SessionEvent, th Thresholds) time.Duration {
	last := len(sorted) - 1
	if !activeDuration(sorted[last], th) {
		return 0
	}

	start := last
	for idx := last; idx > 0; idx-- {
		prev := sorted[idx-1]
		if !activeGap(sorted[idx].OccurredAt.Sub(prev.OccurredAt), th) || !activeDuration(prev, th) {
			break
		}
		start = idx - 1
	}
	return sorted[last].OccurredAt.Sub(sorted[start].OccurredAt)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

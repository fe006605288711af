package http

import (
	"net/http"
	"strconv"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

// LimitSubject rejects requests over the subject's rate.
func (rs *RestfulServer) LimitSubject(c *gin.Context) {
	if !rs.CheckSubjectLimiter(c.Param("subject_id")) {
		c.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	c.Next()
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return limit
}

type ReadingRequest struct {
	PregnancyID     string     `json:"pregnancy_id" zog:"pregnancy_id"`
	Systolic        *float64   `json:"systolic" zog:"systolic"`
	Diastolic       *float64   `json:"diastolic" zog:"diastolic"`
	HeartRate       *float64   `json:"heart_rate" zog:"heart_rate"`
	Weight          *float64   `json:"weight" zog:"weight"`
	Temperature     *float64   `json:"temperature" zog:"temperature"`
	Glucose         *float64   `json:"glucose" zog:"glucose"`
	Fasting         bool       `json:"fasting" zog:"fasting"`
	SpO2            *float64   `json:"spo2" zog:"spo2"`
	FetalMovements  *int       `json:"fetal_movements" zog:"fetal_movements"`
	GestationalWeek int        `json:"gestational_week" zog:"gestational_week"`
	RecordedAt      *time.Time `json:"recorded_at" zog:"recorded_at"`
}

// Ranges are checked by the clinical validator; this only checks types.
var readingRequestSchema = z.Struct(z.Shape{
	"PregnancyID":     z.String(),
	"Systolic":        z.Ptr(z.Float64()),
	"Diastolic":       z.Ptr(z.Float64()),
	"HeartRate":       z.Ptr(z.Float64()),
	"Weight":          z.Ptr(z.Float64()),
	"Temperature":     z.Ptr(z.Float64()),
	"Glucose":         z.Ptr(z.Float64()),
	"Fasting":         z.Bool(),
	"SpO2":            z.Ptr(z.Float64()),
	"FetalMovements":  z.Ptr(z.Int()),
	"GestationalWeek": z.Int(),
	"RecordedAt":      z.Ptr(z.Time()),
})

func (rs *RestfulServer) PostReading(c *gin.Context) {
	subjectID := c.Param("subject_id")

	var req ReadingRequest
	if issues := readingRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		respondIssues(c, issues)
		return
	}

	raw := clinical.RawReading{
		SubjectID:       subjectID,
		PregnancyID:     req.PregnancyID,
		Systolic:        req.Systolic,
		Diastolic:       req.Diastolic,
		HeartRate:       req.HeartRate,
		Weight:          req.Weight,
		Temperature:     req.Temperature,
		Glucose:         req.Glucose,
		Fasting:         req.Fasting,
		SpO2:            req.SpO2,
		FetalMovements:  req.FetalMovements,
		GestationalWeek: req.GestationalWeek,
	}
	if req.RecordedAt != nil {
		raw.RecordedAt = *req.RecordedAt
	}

	result, err := rs.Monitor.Reading.SubmitReading(c.Request.Context(), raw)
	if err != nil && result != nil {
		respondStored(c, err, result)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	readings, err := rs.Monitor.Reading.ListReadings(c.Request.Context(), c.Param("subject_id"), queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	onlyActive := c.Query("active") == "true"

	alerts, err := rs.Monitor.Alert.GetSubjectAlerts(c.Request.Context(), c.Param("subject_id"), onlyActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) AckAlert(c *gin.Context) {
	alert, err := rs.Monitor.Alert.AcknowledgeAlert(c.Request.Context(), c.Param("subject_id"), c.Param("alert_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (rs *RestfulServer) GetTrends(c *gin.Context) {
	trends, err := rs.Monitor.Trend.ComputeSubjectTrends(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

func (rs *RestfulServer) GetSummary(c *gin.Context) {
	summary, err := rs.Monitor.Trend.GetHealthSummary(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type ThresholdsRequest struct {
	SystolicWarning       float64 `json:"systolic_warning" zog:"systolic_warning"`
	DiastolicWarning      float64 `json:"diastolic_warning" zog:"diastolic_warning"`
	SystolicCritical      float64 `json:"systolic_critical" zog:"systolic_critical"`
	DiastolicCritical     float64 `json:"diastolic_critical" zog:"diastolic_critical"`
	HeartRateLow          float64 `json:"heart_rate_low" zog:"heart_rate_low"`
	HeartRateHigh         float64 `json:"heart_rate_high" zog:"heart_rate_high"`
	SpO2Warning           float64 `json:"spo2_warning" zog:"spo2_warning"`
	SpO2Critical          float64 `json:"spo2_critical" zog:"spo2_critical"`
	FeverWarning          float64 `json:"fever_warning" zog:"fever_warning"`
	FeverCritical         float64 `json:"fever_critical" zog:"fever_critical"`
	GlucoseFasting        float64 `json:"glucose_fasting" zog:"glucose_fasting"`
	GlucosePostprandial   float64 `json:"glucose_postprandial" zog:"glucose_postprandial"`
	WeightGainKgPerWeek   float64 `json:"weight_gain_kg_per_week" zog:"weight_gain_kg_per_week"`
	FetalMovementMin      int     `json:"fetal_movement_min" zog:"fetal_movement_min"`
	FetalMovementFromWeek int     `json:"fetal_movement_from_week" zog:"fetal_movement_from_week"`
	KickTarget            int     `json:"kick_target" zog:"kick_target"`
	TrendHysteresis       float64 `json:"trend_hysteresis" zog:"trend_hysteresis"`
	MovementDecline       float64 `json:"movement_decline" zog:"movement_decline"`
}

// ThresholdsResponse is the effective set a subject is checked against, in
// the same shape PostThresholds accepts.
type ThresholdsResponse ThresholdsRequest

func newThresholdsResponse(th clinical.Thresholds) ThresholdsResponse {
	return ThresholdsResponse{
		SystolicWarning:       th.SystolicWarning,
		DiastolicWarning:      th.DiastolicWarning,
		SystolicCritical:      th.SystolicCritical,
		DiastolicCritical:     th.DiastolicCritical,
		HeartRateLow:          th.HeartRateLow,
		HeartRateHigh:         th.HeartRateHigh,
		SpO2Warning:           th.SpO2Warning,
		SpO2Critical:          th.SpO2Critical,
		FeverWarning:          th.FeverWarning,
		FeverCritical:         th.FeverCritical,
		GlucoseFasting:        th.GlucoseFasting,
		GlucosePostprandial:   th.GlucosePostprandial,
		WeightGainKgPerWeek:   th.WeightGainKgPerWeek,
		FetalMovementMin:      th.FetalMovementMin,
		FetalMovementFromWeek: th.FetalMovementFromWeek,
		KickTarget:            th.KickTarget,
		TrendHysteresis:       th.TrendHysteresis,
		MovementDecline:       th.MovementDecline,
	}
}

var thresholdsRequestSchema = z.Struct(z.Shape{
	"SystolicWarning":       z.Float64(),
	"DiastolicWarning":      z.Float64(),
	"SystolicCritical":      z.Float64(),
	"DiastolicCritical":     z.Float64(),
	"HeartRateLow":          z.Float64(),
	"HeartRateHigh":         z.Float64(),
	"SpO2Warning":           z.Float64(),
	"SpO2Critical":          z.Float64(),
	"FeverWarning":          z.Float64(),
	"FeverCritical":         z.Float64(),
	"GlucoseFasting":        z.Float64(),
	"GlucosePostprandial":   z.Float64(),
	"WeightGainKgPerWeek":   z.Float64(),
	"FetalMovementMin":      z.Int(),
	"FetalMovementFromWeek": z.Int(),
	"KickTarget":            z.Int(),
	"TrendHysteresis":       z.Float64(),
	"MovementDecline":       z.Float64(),
})

func (rs *RestfulServer) PostThresholds(c *gin.Context) {
	subjectID := c.Param("subject_id")

	var req ThresholdsRequest
	if issues := thresholdsRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		respondIssues(c, issues)
		return
	}

	thresholds := models.Thresholds{
		SubjectID:             subjectID,
		SystolicWarning:       req.SystolicWarning,
		DiastolicWarning:      req.DiastolicWarning,
		SystolicCritical:      req.SystolicCritical,
		DiastolicCritical:     req.DiastolicCritical,
		HeartRateLow:          req.HeartRateLow,
		HeartRateHigh:         req.HeartRateHigh,
		SpO2Warning:           req.SpO2Warning,
		SpO2Critical:          req.SpO2Critical,
		FeverWarning:          req.FeverWarning,
		FeverCritical:         req.FeverCritical,
		GlucoseFasting:        req.GlucoseFasting,
		GlucosePostprandial:   req.GlucosePostprandial,
		WeightGainKgPerWeek:   req.WeightGainKgPerWeek,
		FetalMovementMin:      req.FetalMovementMin,
		FetalMovementFromWeek: req.FetalMovementFromWeek,
		KickTarget:            req.KickTarget,
		TrendHysteresis:       req.TrendHysteresis,
		MovementDecline:       req.MovementDecline,
	}

	if err := rs.Monitor.Thresholds.UpsertThresholds(c.Request.Context(), subjectID, &thresholds); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetThresholds(c *gin.Context) {
	th, err := rs.Monitor.Thresholds.GetThresholds(c.Request.Context(), c.Param("subject_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newThresholdsResponse(th))
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	subjectID := c.Param("subject_id")

	var req LimiterRequest
	if issues := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		respondIssues(c, issues)
		return
	}

	rs.SetLimiter(subjectID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

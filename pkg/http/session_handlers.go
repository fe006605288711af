package http

import (
	"net/http"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

type SessionRequest struct {
	Type        string `json:"type" zog:"type"`
	PregnancyID string `json:"pregnancy_id" zog:"pregnancy_id"`
}

var sessionRequestSchema = z.Struct(z.Shape{
	"Type":        z.String().OneOf([]string{string(models.SessionTypeKick), string(models.SessionTypeContraction)}).Required(),
	"PregnancyID": z.String(),
})

func (rs *RestfulServer) PostSession(c *gin.Context) {
	var req SessionRequest
	if issues := sessionRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		respondIssues(c, issues)
		return
	}

	session, err := rs.Monitor.Session.StartSession(c.Request.Context(), c.Param("subject_id"), req.PregnancyID, models.SessionType(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (rs *RestfulServer) GetSessions(c *gin.Context) {
	sessionType := models.SessionType(c.Query("type"))

	sessions, err := rs.Monitor.Session.ListSessions(c.Request.Context(), c.Param("subject_id"), sessionType, queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (rs *RestfulServer) GetActiveSession(c *gin.Context) {
	sessionType := models.SessionType(c.Query("type"))

	session, err := rs.Monitor.Session.GetActiveSession(c.Request.Context(), c.Param("subject_id"), sessionType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (rs *RestfulServer) GetSession(c *gin.Context) {
	session, err := rs.Monitor.Session.GetSession(c.Request.Context(), c.Param("subject_id"), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

type EventRequest struct {
	OccurredAt      *time.Time `json:"occurred_at" zog:"occurred_at"`
	DurationSeconds float64    `json:"duration_seconds" zog:"duration_seconds"`
	Count           int        `json:"count" zog:"count"`
}

var eventRequestSchema = z.Struct(z.Shape{
	"OccurredAt":      z.Ptr(z.Time()),
	"DurationSeconds": z.Float64(),
	"Count":           z.Int(),
})

func (rs *RestfulServer) PostSessionEvent(c *gin.Context) {
	var req EventRequest
	if issues := eventRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		respondIssues(c, issues)
		return
	}

	data := models.EventData{DurationSeconds: req.DurationSeconds, Count: req.Count}
	if req.OccurredAt != nil {
		data.OccurredAt = *req.OccurredAt
	}

	session, err := rs.Monitor.Session.RecordEvent(c.Request.Context(), c.Param("subject_id"), c.Param("session_id"), data)
	if err != nil && session != nil {
		respondStored(c, err, session)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

type EndSessionRequest struct {
	Notes string `json:"notes" zog:"notes"`
}

var endSessionRequestSchema = z.Struct(z.Shape{
	"Notes": z.String().Max(2000),
})

func (rs *RestfulServer) EndSession(c *gin.Context) {
	var req EndSessionRequest
	if c.Request.ContentLength != 0 {
		if issues := endSessionRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
			respondIssues(c, issues)
			return
		}
	}

	session, err := rs.Monitor.Session.EndSession(c.Request.Context(), c.Param("subject_id"), c.Param("session_id"), req.Notes)
	if err != nil && session != nil {
		respondStored(c, err, session)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (rs *RestfulServer) GetLabor(c *gin.Context) {
	assessment, err := rs.Monitor.Session.ClassifyLabor(c.Request.Context(), c.Param("subject_id"), c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

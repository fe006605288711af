package grpc

import (
	"context"
	"time"

	z "github.com/Oudwins/zog"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/maternity-monitor-service/pkg/clinical"
	"liyu1981.xyz/maternity-monitor-service/pkg/models"
)

type SubmitReadingRequest struct {
	SubjectID       string     `json:"subject_id"`
	PregnancyID     string     `json:"pregnancy_id"`
	Systolic        *float64   `json:"systolic"`
	Diastolic       *float64   `json:"diastolic"`
	HeartRate       *float64   `json:"heart_rate"`
	Weight          *float64   `json:"weight"`
	Temperature     *float64   `json:"temperature"`
	Glucose         *float64   `json:"glucose"`
	Fasting         bool       `json:"fasting"`
	SpO2            *float64   `json:"spo2"`
	FetalMovements  *int       `json:"fetal_movements"`
	GestationalWeek int        `json:"gestational_week"`
	RecordedAt      *time.Time `json:"recorded_at"`
}

type SessionKeyRequest struct {
	SubjectID string `json:"subject_id"`
	SessionID string `json:"session_id"`
}

type StartSessionRequest struct {
	SubjectID   string `json:"subject_id"`
	PregnancyID string `json:"pregnancy_id"`
	Type        string `json:"type"`
}

type RecordEventRequest struct {
	SubjectID       string     `json:"subject_id"`
	SessionID       string     `json:"session_id"`
	OccurredAt      *time.Time `json:"occurred_at"`
	DurationSeconds float64    `json:"duration_seconds"`
	Count           int        `json:"count"`
}

type EndSessionRequest struct {
	SubjectID string `json:"subject_id"`
	SessionID string `json:"session_id"`
	Notes     string `json:"notes"`
}

type SubjectRequest struct {
	SubjectID string `json:"subject_id"`
}

var subjectIDValidator = z.String().Min(1).Required()

func validateSubjectID(subjectID *string) z.ZogIssueList {
	return subjectIDValidator.Validate(subjectID)
}

var sessionKeyValidator = z.Struct(z.Shape{
	"SubjectID": z.String().Min(1).Required(),
	"SessionID": z.String().Min(1).Required(),
})

var startSessionValidator = z.Struct(z.Shape{
	"SubjectID": z.String().Min(1).Required(),
	"Type":      z.String().OneOf([]string{string(models.SessionTypeKick), string(models.SessionTypeContraction)}).Required(),
})

var endSessionValidator = z.Struct(z.Shape{
	"Notes": z.String().Max(2000),
})

func subjectIssues(subjectID *string) error {
	if issues := validateSubjectID(subjectID); issues != nil {
		return issuesToStatus(z.ZogIssueMap{"subject_id": issues})
	}
	return nil
}

func (s *MonitorServer) SubmitReading(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SubmitReadingRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := subjectIssues(&req.SubjectID); err != nil {
		return nil, err
	}

	raw := clinical.RawReading{
		SubjectID:       req.SubjectID,
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

	result, err := s.Monitor.Reading.SubmitReading(ctx, raw)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(result)
}

func (s *MonitorServer) StartSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req StartSessionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if issues := startSessionValidator.Validate(&req); issues != nil {
		return nil, issuesToStatus(issues)
	}

	session, err := s.Monitor.Session.StartSession(ctx, req.SubjectID, req.PregnancyID, models.SessionType(req.Type))
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(session)
}

func (s *MonitorServer) RecordEvent(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RecordEventRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	key := SessionKeyRequest{SubjectID: req.SubjectID, SessionID: req.SessionID}
	if issues := sessionKeyValidator.Validate(&key); issues != nil {
		return nil, issuesToStatus(issues)
	}

	data := models.EventData{DurationSeconds: req.DurationSeconds, Count: req.Count}
	if req.OccurredAt != nil {
		data.OccurredAt = *req.OccurredAt
	}

	session, err := s.Monitor.Session.RecordEvent(ctx, req.SubjectID, req.SessionID, data)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(session)
}

func (s *MonitorServer) EndSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EndSessionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	key := SessionKeyRequest{SubjectID: req.SubjectID, SessionID: req.SessionID}
	if issues := sessionKeyValidator.Validate(&key); issues != nil {
		return nil, issuesToStatus(issues)
	}
	if issues := endSessionValidator.Validate(&req); issues != nil {
		return nil, issuesToStatus(issues)
	}

	session, err := s.Monitor.Session.EndSession(ctx, req.SubjectID, req.SessionID, req.Notes)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(session)
}

func (s *MonitorServer) ClassifyLabor(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SessionKeyRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if issues := sessionKeyValidator.Validate(&req); issues != nil {
		return nil, issuesToStatus(issues)
	}

	assessment, err := s.Monitor.Session.ClassifyLabor(ctx, req.SubjectID, req.SessionID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(assessment)
}

func (s *MonitorServer) GetSummary(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SubjectRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := subjectIssues(&req.SubjectID); err != nil {
		return nil, err
	}

	summary, err := s.Monitor.Trend.GetHealthSummary(ctx, req.SubjectID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(summary)
}

package grpc

import (
	"encoding/json"
	"errors"
	"strings"

	z "github.com/Oudwins/zog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/maternity-monitor-service/pkg/common"
)

func CodeFor(err error) codes.Code {
	switch {
	case errors.Is(err, common.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrInvalidState):
		return codes.FailedPrecondition
	case errors.Is(err, common.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrForbidden):
		return codes.PermissionDenied
	case errors.Is(err, common.ErrDependency):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func toStatus(err error) error {
	return status.Error(CodeFor(err), err.Error())
}

// decode copies a Struct into a request type through its JSON form.
func decode(in *structpb.Struct, out any) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "unreadable request: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		verr := common.NewValidationError()
		verr.Add("$body", err.Error())
		return toStatus(verr)
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func issuesToStatus(issues z.ZogIssueMap) error {
	verr := common.NewValidationError()
	for field, list := range issues {
		if len(list) == 0 || strings.HasPrefix(field, "$") {
			continue
		}
		verr.Add(field, list[0].Message)
	}
	if !verr.HasErrors() {
		verr.Add("request", "invalid")
	}
	return toStatus(verr)
}

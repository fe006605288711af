package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages travel as google.protobuf.Struct; field names match the REST
// JSON bodies.
const ServiceName = "maternity.v1.MonitorService"

const (
	MethodSubmitReading = "/" + ServiceName + "/SubmitReading"
	MethodStartSession  = "/" + ServiceName + "/StartSession"
	MethodRecordEvent   = "/" + ServiceName + "/RecordEvent"
	MethodEndSession    = "/" + ServiceName + "/EndSession"
	MethodClassifyLabor = "/" + ServiceName + "/ClassifyLabor"
	MethodGetSummary    = "/" + ServiceName + "/GetSummary"
)

type MonitorServiceServer interface {
	SubmitReading(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordEvent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClassifyLabor(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv MonitorServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

// methodHandler is the handler signature grpc.MethodDesc expects.
type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(fullMethod string, call unaryCall) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MonitorServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MonitorServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var MonitorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MonitorServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitReading", Handler: unaryHandler(MethodSubmitReading, MonitorServiceServer.SubmitReading)},
		{MethodName: "StartSession", Handler: unaryHandler(MethodStartSession, MonitorServiceServer.StartSession)},
		{MethodName: "RecordEvent", Handler: unaryHandler(MethodRecordEvent, MonitorServiceServer.RecordEvent)},
		{MethodName: "EndSession", Handler: unaryHandler(MethodEndSession, MonitorServiceServer.EndSession)},
		{MethodName: "ClassifyLabor", Handler: unaryHandler(MethodClassifyLabor, MonitorServiceServer.ClassifyLabor)},
		{MethodName: "GetSummary", Handler: unaryHandler(MethodGetSummary, MonitorServiceServer.GetSummary)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "maternity/v1/monitor.proto",
}

func RegisterMonitorServiceServer(s grpc.ServiceRegistrar, srv MonitorServiceServer) {
	s.RegisterService(&MonitorServiceDesc, srv)
}

type MonitorServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMonitorServiceClient(cc grpc.ClientConnInterface) *MonitorServiceClient {
	return &MonitorServiceClient{cc: cc}
}

func (c *MonitorServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MonitorServiceClient) SubmitReading(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodSubmitReading, in, opts...)
}

func (c *MonitorServiceClient) StartSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodStartSession, in, opts...)
}

func (c *MonitorServiceClient) RecordEvent(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodRecordEvent, in, opts...)
}

func (c *MonitorServiceClient) EndSession(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodEndSession, in, opts...)
}

func (c *MonitorServiceClient) ClassifyLabor(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodClassifyLabor, in, opts...)
}

func (c *MonitorServiceClient) GetSummary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetSummary, in, opts...)
}

// Package grpcresult maps response.Result values onto gRPC. A success
// becomes a *structpb.Value holding the same JSON an HTTP renderer would
// write; a failure becomes a status whose code follows the resolved HTTP
// status, with one structpb.Struct detail per error object.
package grpcresult

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/leeforge/webresult/json"
	"github.com/leeforge/webresult/render"
	"github.com/leeforge/webresult/response"
)

var httpToGRPC = map[int]codes.Code{
	400: codes.InvalidArgument,
	401: codes.Unauthenticated,
	403: codes.PermissionDenied,
	404: codes.NotFound,
	409: codes.Aborted,
	410: codes.NotFound,
	412: codes.FailedPrecondition,
	429: codes.ResourceExhausted,
	499: codes.Canceled,
	500: codes.Internal,
	501: codes.Unimplemented,
	502: codes.Unavailable,
	503: codes.Unavailable,
	504: codes.DeadlineExceeded,
}

// Code maps an HTTP status onto a gRPC code. Unlisted 4xx statuses map to
// FailedPrecondition, unlisted 5xx to Internal, anything else to Unknown.
func Code(httpStatus int) codes.Code {
	if c, ok := httpToGRPC[httpStatus]; ok {
		return c
	}
	switch {
	case httpStatus >= 400 && httpStatus < 500:
		return codes.FailedPrecondition
	case httpStatus >= 500 && httpStatus < 600:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// Encode converts res. Exactly one of the return values is non-nil; the
// error, when present, is a gRPC status error.
func Encode(res response.Result) (*structpb.Value, error) {
	out, err := render.Render(res)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode failed")
	}

	if res.IsOk() {
		v := &structpb.Value{}
		if err := protojson.Unmarshal(out.Body, v); err != nil {
			return nil, status.Error(codes.Internal, errors.Wrap(err, "grpcresult: success payload").Error())
		}
		return v, nil
	}

	errs, _ := res.Errors()
	return nil, Status(errs).Err()
}

// Status builds the gRPC status for r. Objects that cannot be turned into
// details are skipped; the status itself is always returned.
func Status(r response.ErrorResponse) *status.Status {
	st := status.New(Code(r.Status()), r.Error())

	details := make([]*structpb.Struct, 0, r.Len())
	for _, e := range r.Errors {
		d, err := toStruct(e)
		if err != nil {
			continue
		}
		details = append(details, d)
	}
	if len(details) == 0 {
		return st
	}

	with, err := withDetails(st, details)
	if err != nil {
		return st
	}
	return with
}

func withDetails(st *status.Status, details []*structpb.Struct) (*status.Status, error) {
	for _, d := range details {
		next, err := st.WithDetails(d)
		if err != nil {
			return nil, err
		}
		st = next
	}
	return st, nil
}

func toStruct(e response.ErrorObject) (*structpb.Struct, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, "grpcresult: encode error object")
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, errors.Wrap(err, "grpcresult: error object detail")
	}
	return s, nil
}

// ErrorObjects pulls the error objects back out of a gRPC error. It
// reports false when err carries no status or no decodable detail.
func ErrorObjects(err error) ([]response.ErrorObject, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}

	var objs []response.ErrorObject
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		raw, err := protojson.Marshal(s)
		if err != nil {
			continue
		}
		var e response.ErrorObject
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		objs = append(objs, e)
	}
	return objs, len(objs) > 0
}

// UnaryServerInterceptor converts handler errors that are not already gRPC
// statuses with response.FromError, so ErrorObject and ErrorResponse values
// reach clients as statuses with details.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, Status(response.FromError(err)).Err()
	}
}

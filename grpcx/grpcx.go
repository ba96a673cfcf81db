/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package grpcx carries classified errors across gRPC. Servers turn a
// *apiflow.Error into a status whose details hold the error descriptor as a
// protobuf Struct; clients classify status errors back into *apiflow.Error.
package grpcx

import (
	"context"
	"encoding/json"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/adapter"
	"dirpx.dev/apiflow/apis"
	"dirpx.dev/apiflow/classify"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/mapper"
	"dirpx.dev/apiflow/reason"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStatus converts err into a gRPC status using m (nil means the package
// defaults). The descriptor is attached as a structpb.Struct detail; if
// that fails the bare status is returned. A nil err yields OK.
func ToStatus(err error, m apis.Mapper) *gstatus.Status {
	e := adapter.FromError(err)
	if e == nil {
		return gstatus.New(gcodes.OK, "")
	}
	if m == nil {
		m = mapper.Default()
	}
	res := m.Resolve(e.Kind, e.Reason)
	base := gstatus.New(res.GRPC, e.Message)

	desc, derr := descriptorStruct(adapter.ToDescriptor(e, res))
	if derr != nil {
		return base
	}
	with, derr := base.WithDetails(desc)
	if derr != nil {
		return base
	}
	return with
}

func descriptorStruct(d apis.ErrorDescriptor) (*structpb.Struct, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// ExtractDescriptor pulls the error descriptor out of a gRPC error, if
// present.
func ExtractDescriptor(err error) (apis.ErrorDescriptor, bool) {
	if err == nil {
		return apis.ErrorDescriptor{}, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return apis.ErrorDescriptor{}, false
	}
	for _, a := range st.Proto().GetDetails() {
		if d, ok := unpackDescriptor(a); ok {
			return d, true
		}
	}
	return apis.ErrorDescriptor{}, false
}

func unpackDescriptor(a *anypb.Any) (apis.ErrorDescriptor, bool) {
	var s structpb.Struct
	if err := a.UnmarshalTo(&s); err != nil {
		return apis.ErrorDescriptor{}, false
	}
	b, err := protojson.Marshal(&s)
	if err != nil {
		return apis.ErrorDescriptor{}, false
	}
	var d apis.ErrorDescriptor
	if err := json.Unmarshal(b, &d); err != nil || d.Kind == "" {
		return apis.ErrorDescriptor{}, false
	}
	return d, true
}

// FromStatus rebuilds the classified error a server attached to err. It
// returns false when err carries no descriptor.
func FromStatus(err error) (*apiflow.Error, bool) {
	d, ok := ExtractDescriptor(err)
	if !ok {
		return nil, false
	}
	k, perr := code.Parse(d.Kind)
	if perr != nil || !code.Known(k) {
		k = code.Unknown
	}
	e := apiflow.E(k, d.Message, apiflow.WithCodeOption(d.Code), apiflow.WithCauseOption(err))
	if r, perr := reason.Parse(d.Reason); perr == nil {
		e = e.WithReason(r)
	}
	return e, true
}

// UnaryServerInterceptor converts errors returned by handlers into
// statuses via ToStatus. Errors that already are gRPC statuses pass
// through.
func UnaryServerInterceptor(m apis.Mapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := gstatus.FromError(err); ok {
			return nil, err
		}
		return nil, ToStatus(err, m).Err()
	}
}

// UnaryClientInterceptor classifies every failed call with c, so gRPC
// failures get the same notices and escalation as HTTP ones. A descriptor
// attached by the server takes precedence over the bare status code.
func UnaryClientInterceptor(c *classify.Classifier) grpc.UnaryClientInterceptor {
	if c == nil {
		panic("grpcx: UnaryClientInterceptor requires a classifier")
	}
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}
		ctx = classify.WithGuard(ctx)
		if e, ok := FromStatus(err); ok {
			return c.Failure(ctx, e)
		}
		return c.Failure(ctx, err)
	}
}

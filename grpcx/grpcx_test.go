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

package grpcx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/classify"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/mapper"
	"dirpx.dev/apiflow/reason"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

func TestToStatus_RoundTrip(t *testing.T) {
	e := apiflow.E(code.Unauthorized, mapper.NoticeUnauthorized,
		apiflow.WithReasonOption(reason.StatusForbidden),
		apiflow.WithCodeOption(403))
	st := ToStatus(e, nil)
	if st.Code() != gcodes.PermissionDenied || st.Message() != mapper.NoticeUnauthorized {
		t.Fatalf("status = %v", st)
	}

	d, ok := ExtractDescriptor(st.Err())
	if !ok {
		t.Fatal("descriptor missing")
	}
	if d.Kind != "unauthorized" || d.Reason != "status.forbidden" || d.Code != 403 || d.HTTPStatus != 403 {
		t.Fatalf("descriptor = %+v", d)
	}

	back, ok := FromStatus(st.Err())
	if !ok || back.Kind != code.Unauthorized || back.Reason != reason.StatusForbidden || back.Code != 403 {
		t.Fatalf("rebuilt = %+v", back)
	}
}

func TestToStatus_Edges(t *testing.T) {
	if st := ToStatus(nil, nil); st.Code() != gcodes.OK {
		t.Fatalf("nil = %v", st)
	}
	if st := ToStatus(errors.New("boom"), mapper.MustNew()); st.Code() != gcodes.Unknown || st.Message() != "boom" {
		t.Fatalf("plain = %v", st)
	}
	if _, ok := ExtractDescriptor(gstatus.Error(gcodes.NotFound, "bare")); ok {
		t.Fatal("bare status has no descriptor")
	}
	if _, ok := ExtractDescriptor(errors.New("not grpc")); ok {
		t.Fatal("plain error has no descriptor")
	}
}

func TestUnaryServerInterceptor(t *testing.T) {
	icpt := UnaryServerInterceptor(nil)
	info := &grpc.UnaryServerInfo{FullMethod: "/petstore.Pets/Get"}

	_, err := icpt(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, apiflow.E(code.TimeoutError, mapper.NoticeTimeout)
	})
	if gstatus.Code(err) != gcodes.DeadlineExceeded {
		t.Fatalf("err = %v", err)
	}

	orig := gstatus.Error(gcodes.Aborted, "keep")
	_, err = icpt(context.Background(), nil, info, func(context.Context, any) (any, error) { return nil, orig })
	if err != orig {
		t.Fatalf("status errors must pass through, got %v", err)
	}

	resp, err := icpt(context.Background(), nil, info, func(context.Context, any) (any, error) { return "ok", nil })
	if err != nil || resp != "ok" {
		t.Fatalf("resp=%v err=%v", resp, err)
	}
}

type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) Notify(msg string, _ time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func TestUnaryClientInterceptor(t *testing.T) {
	n := &notices{}
	cls := classify.New(classify.Config{Notifier: n})
	defer cls.Close()
	icpt := UnaryClientInterceptor(cls)

	call := func(err error) error {
		return icpt(context.Background(), "/petstore.Pets/Get", nil, nil, nil,
			func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return err })
	}

	if err := call(nil); err != nil {
		t.Fatalf("success = %v", err)
	}
	if err := call(gstatus.Error(gcodes.Unavailable, "conn refused")); !apiflow.IsKind(err, code.NetworkError) {
		t.Fatalf("unavailable = %v", err)
	}
	withDesc := ToStatus(apiflow.E(code.ClientError, "Pet not found",
		apiflow.WithCodeOption(404), apiflow.WithReasonOption(reason.StatusClient)), nil).Err()
	err := call(withDesc)
	e, ok := apiflow.As(err)
	if !ok || e.Kind != code.ClientError || e.Code != 404 || e.Message != "Pet not found" {
		t.Fatalf("descriptor = %v", err)
	}
	if len(n.msgs) != 2 || n.msgs[1] != "Pet not found" {
		t.Fatalf("notices = %v", n.msgs)
	}
}

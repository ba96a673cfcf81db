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

package classify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/mapper"
	"dirpx.dev/apiflow/reason"
	"dirpx.dev/apiflow/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type notice struct {
	msg string
	d   time.Duration
}

type recorder struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recorder) Notify(msg string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{msg, d})
}

func (r *recorder) all() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

type navigator struct {
	calls chan string
}

func newNavigator() *navigator { return &navigator{calls: make(chan string, 8)} }

func (n *navigator) ReplaceAll(route string) error {
	n.calls <- route
	return nil
}

func newClassifier(t *testing.T, delay time.Duration) (*Classifier, *recorder, *navigator) {
	t.Helper()
	rec, nav := &recorder{}, newNavigator()
	c := New(Config{Notifier: rec, Navigator: nav, RedirectDelay: delay})
	t.Cleanup(c.Close)
	return c, rec, nav
}

func response(t *testing.T, st int, body any) *envelope.Response {
	t.Helper()
	r, err := envelope.JSON(st, body)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	return r
}

func TestClassifyResponse(t *testing.T) {
	c := New(Config{})
	tests := []struct {
		status  int
		kind    code.Code
		reason  reason.Reason
		message string
	}{
		{200, "", "", ""},
		{204, "", "", ""},
		{302, "", "", ""},
		{401, code.Unauthorized, reason.StatusUnauthorized, mapper.NoticeUnauthorized},
		{403, code.Unauthorized, reason.StatusForbidden, mapper.NoticeUnauthorized},
		{400, code.ClientError, reason.StatusClient, "Request failed with status: 400"},
		{404, code.ClientError, reason.StatusClient, "Request failed with status: 404"},
		{500, code.ClientError, reason.StatusServer, "Request failed with status: 500"},
		{503, code.ClientError, reason.StatusServer, "Request failed with status: 503"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			e := c.ClassifyResponse(response(t, tt.status, envelope.ErrorBody{Code: tt.status, Message: "boom"}))
			if tt.kind == "" {
				if e != nil {
					t.Fatalf("want success, got %v", e)
				}
				return
			}
			if e == nil {
				t.Fatal("want error")
			}
			if e.Kind != tt.kind || e.Reason != tt.reason || e.Message != tt.message || e.Code != tt.status {
				t.Fatalf("got %+v", e)
			}
			if e.Details["body_message"] != "boom" {
				t.Fatalf("details = %v", e.Details)
			}
		})
	}
}

func TestClassifyResponse_Idempotent(t *testing.T) {
	c := New(Config{})
	r := response(t, 404, envelope.ErrorBody{Code: 404, Message: "Pet not found"})
	a, b := c.ClassifyResponse(r), c.ClassifyResponse(r)
	if a.Kind != b.Kind || a.Reason != b.Reason || a.Message != b.Message || a.Code != b.Code {
		t.Fatalf("not idempotent: %v vs %v", a, b)
	}
}

func TestUnauthorizedBodyCodeIgnored(t *testing.T) {
	c := New(Config{})
	e := c.ClassifyResponse(response(t, 401, envelope.Base(map[string]any{"ok": true})))
	if e == nil || e.Kind != code.Unauthorized {
		t.Fatalf("401 with success envelope must be unauthorized, got %v", e)
	}
	if e.Data == nil {
		t.Fatal("payload must be attached")
	}
}

func TestClassifyFailure(t *testing.T) {
	c := New(Config{})
	passthrough := apiflow.E(code.ClientError, "kept")
	tests := []struct {
		name    string
		err     error
		kind    code.Code
		reason  reason.Reason
		message string
	}{
		{"nil", nil, code.Unknown, "", mapper.NoticeUnknown},
		{"timeout", errors.Join(transport.ErrTimeout, errors.New("x")), code.TimeoutError, reason.TransportDeadline, mapper.NoticeTimeout},
		{"deadline", context.DeadlineExceeded, code.TimeoutError, reason.TransportDeadline, mapper.NoticeTimeout},
		{"network", fmt.Errorf("dial: %w", transport.ErrNetwork), code.NetworkError, reason.TransportNetwork, mapper.NoticeNetwork},
		{"request", errors.Join(transport.ErrRequest, errors.New("bad")), code.ClientError, reason.RequestInvalid, "transport: invalid request\nbad"},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), code.NetworkError, reason.TransportNetwork, mapper.NoticeNetwork},
		{"grpc deadline", status.Error(codes.DeadlineExceeded, "slow"), code.TimeoutError, reason.TransportDeadline, mapper.NoticeTimeout},
		{"grpc unauthenticated", status.Error(codes.Unauthenticated, "who"), code.Unauthorized, reason.StatusUnauthorized, mapper.NoticeUnauthorized},
		{"grpc invalid", status.Error(codes.InvalidArgument, "bad id"), code.ClientError, "grpc.invalid_argument", "bad id"},
		{"other", errors.New("weird"), code.ClientError, reason.TransportOther, "weird"},
		{"passthrough", passthrough, code.ClientError, "", "kept"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := c.ClassifyFailure(tt.err)
			if e.Kind != tt.kind || e.Reason != tt.reason || e.Message != tt.message {
				t.Fatalf("got kind=%s reason=%s msg=%q", e.Kind, e.Reason, e.Message)
			}
		})
	}
	if got := c.ClassifyFailure(passthrough); got != passthrough {
		t.Fatal("classified errors must pass through unchanged")
	}
}

func TestGRPCReason(t *testing.T) {
	tests := map[codes.Code]reason.Reason{
		codes.InvalidArgument:   "grpc.invalid_argument",
		codes.NotFound:          "grpc.not_found",
		codes.OK:                "grpc.ok",
		codes.ResourceExhausted: "grpc.resource_exhausted",
	}
	for gc, want := range tests {
		if got := GRPCReason(gc); got != want {
			t.Errorf("GRPCReason(%v) = %q; want %q", gc, got, want)
		}
	}
}

func TestResponse_SuccessReturnsBody(t *testing.T) {
	c, rec, _ := newClassifier(t, time.Millisecond)
	body, err := c.Response(context.Background(), response(t, 200, envelope.Base("ok")))
	if err != nil || len(body) == 0 {
		t.Fatalf("body=%q err=%v", body, err)
	}
	if n := len(rec.all()); n != 0 {
		t.Fatalf("success must not notify, got %d", n)
	}
}

func TestResponse_ClientErrorNotifiesOnce(t *testing.T) {
	c, rec, nav := newClassifier(t, time.Millisecond)
	ctx := WithGuard(context.Background())
	_, err := c.Response(ctx, response(t, 404, envelope.ErrorBody{Code: 404, Message: "Pet not found"}))
	if !errors.Is(err, apiflow.ErrClient) {
		t.Fatalf("err = %v", err)
	}
	// The client hands the same error to Failure; no second notice.
	if got := c.Failure(ctx, err); got != err {
		t.Fatalf("Failure must pass the error through, got %v", got)
	}
	ns := rec.all()
	if len(ns) != 1 || ns[0].msg != "Request failed with status: 404" || ns[0].d != 0 {
		t.Fatalf("notices = %+v", ns)
	}
	select {
	case r := <-nav.calls:
		t.Fatalf("client errors must not redirect, got %q", r)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestResponse_UnauthorizedEscalatesOncePerRequest(t *testing.T) {
	c, rec, nav := newClassifier(t, 10*time.Millisecond)
	ctx := WithGuard(context.Background())

	_, err := c.Response(ctx, response(t, 401, envelope.ErrorBody{Code: 401, Message: "nope"}))
	if !errors.Is(err, apiflow.ErrUnauthorized) {
		t.Fatalf("err = %v", err)
	}
	_ = c.Failure(ctx, err)

	ns := rec.all()
	if len(ns) != 1 || ns[0].msg != mapper.NoticeUnauthorized || ns[0].d != DefaultUnauthorizedNotice {
		t.Fatalf("notices = %+v", ns)
	}
	select {
	case r := <-nav.calls:
		if r != DefaultLoginRoute {
			t.Fatalf("route = %q", r)
		}
	case <-time.After(time.Second):
		t.Fatal("redirect never happened")
	}
	select {
	case r := <-nav.calls:
		t.Fatalf("second redirect %q", r)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRedirect_NewerEscalationSupersedes(t *testing.T) {
	c, _, nav := newClassifier(t, 40*time.Millisecond)
	for i := 0; i < 3; i++ {
		_, _ = c.Response(WithGuard(context.Background()), response(t, http.StatusForbidden, nil))
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case <-nav.calls:
	case <-time.After(time.Second):
		t.Fatal("redirect never happened")
	}
	select {
	case r := <-nav.calls:
		t.Fatalf("superseded redirects must not fire, got %q", r)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClose_CancelsPendingRedirect(t *testing.T) {
	c, _, nav := newClassifier(t, 20*time.Millisecond)
	_, _ = c.Response(context.Background(), response(t, 401, nil))
	c.Close()
	select {
	case r := <-nav.calls:
		t.Fatalf("redirect after Close: %q", r)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestFailure_NetworkNotice(t *testing.T) {
	c, rec, _ := newClassifier(t, time.Millisecond)
	err := c.Failure(context.Background(), transport.ErrNetwork)
	if !errors.Is(err, apiflow.ErrNetwork) || !errors.Is(err, transport.ErrNetwork) {
		t.Fatalf("err = %v", err)
	}
	if ns := rec.all(); len(ns) != 1 || ns[0].msg != mapper.NoticeNetwork {
		t.Fatalf("notices = %+v", ns)
	}
}

func TestNoticeOverrideFromMapper(t *testing.T) {
	m := mapper.MustNew(mapper.WithNoticePrefix(code.ClientError, "status.server", "Server is having trouble"))
	rec := &recorder{}
	c := New(Config{Mapper: m, Notifier: rec})
	defer c.Close()
	_, _ = c.Response(context.Background(), response(t, 502, nil))
	if ns := rec.all(); len(ns) != 1 || ns[0].msg != "Server is having trouble" {
		t.Fatalf("notices = %+v", ns)
	}
}

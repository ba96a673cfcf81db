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
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/apis"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/mapper"
	"dirpx.dev/apiflow/reason"
	"dirpx.dev/apiflow/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Defaults.
const (
	DefaultLoginRoute         = "login"
	DefaultRedirectDelay      = 500 * time.Millisecond
	DefaultUnauthorizedNotice = 500 * time.Millisecond
	FallbackMessage           = "Request failed"
)

// Notifier shows a transient error notice. A zero duration means the
// notifier's default.
type Notifier interface {
	Notify(msg string, d time.Duration)
}

// Navigator resets navigation history to a named destination.
type Navigator interface {
	ReplaceAll(route string) error
}

// Config configures a Classifier. Nil collaborators are skipped.
type Config struct {
	Mapper    apis.Mapper
	Notifier  Notifier
	Navigator Navigator

	LoginRoute    string
	RedirectDelay time.Duration

	// UnauthorizedNoticeDuration is how long the session-expired notice
	// stays up; NoticeDuration applies to every other notice.
	UnauthorizedNoticeDuration time.Duration
	NoticeDuration             time.Duration

	Logger *slog.Logger
}

// Classifier normalizes outcomes. It is safe for concurrent use.
type Classifier struct {
	cfg Config
	log *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	closed bool
}

// New returns a Classifier.
func New(cfg Config) *Classifier {
	if cfg.Mapper == nil {
		cfg.Mapper = mapper.Default()
	}
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = DefaultLoginRoute
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = DefaultRedirectDelay
	}
	if cfg.UnauthorizedNoticeDuration <= 0 {
		cfg.UnauthorizedNoticeDuration = DefaultUnauthorizedNotice
	}
	c := &Classifier{cfg: cfg, log: cfg.Logger}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

// Response classifies a completed response. On success it returns the
// body; otherwise the classified error, after its notice and escalation.
func (c *Classifier) Response(ctx context.Context, resp *envelope.Response) ([]byte, error) {
	if e := c.ClassifyResponse(resp); e != nil {
		c.surface(ctx, e)
		return nil, e
	}
	return resp.Body, nil
}

// Failure classifies an error that never produced a status and returns it
// after its notice and escalation. An error that is already classified is
// returned unchanged; its side effects are not repeated within a guarded
// request.
func (c *Classifier) Failure(ctx context.Context, err error) error {
	e := c.ClassifyFailure(err)
	c.surface(ctx, e)
	return e
}

// ClassifyResponse is the side-effect-free part of Response. It returns
// nil for a successful response.
func (c *Classifier) ClassifyResponse(resp *envelope.Response) *apiflow.Error {
	if resp == nil {
		return apiflow.E(code.Unknown, mapper.NoticeUnknown)
	}
	st := resp.Status
	switch {
	case st == http.StatusUnauthorized || st == http.StatusForbidden:
		r := reason.StatusUnauthorized
		if st == http.StatusForbidden {
			r = reason.StatusForbidden
		}
		return c.decorate(apiflow.E(code.Unauthorized, mapper.NoticeUnauthorized,
			apiflow.WithReasonOption(r),
			apiflow.WithCodeOption(st),
		), resp)
	case st >= http.StatusBadRequest:
		r := reason.StatusClient
		if st >= http.StatusInternalServerError {
			r = reason.StatusServer
		}
		return c.decorate(apiflow.E(code.ClientError, fmt.Sprintf("Request failed with status: %d", st),
			apiflow.WithReasonOption(r),
			apiflow.WithCodeOption(st),
		), resp)
	}
	return nil
}

func (c *Classifier) decorate(e *apiflow.Error, resp *envelope.Response) *apiflow.Error {
	e = e.WithData(resp.Payload())
	if eb, ok := resp.ErrorBody(); ok {
		e = e.WithDetail("body_message", eb.Message)
	}
	return e
}

// ClassifyFailure is the side-effect-free part of Failure.
func (c *Classifier) ClassifyFailure(err error) *apiflow.Error {
	if err == nil {
		return apiflow.E(code.Unknown, mapper.NoticeUnknown)
	}
	if e, ok := apiflow.As(err); ok {
		return e
	}
	switch {
	case errors.Is(err, transport.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return timeoutError(err)
	case errors.Is(err, transport.ErrNetwork):
		return networkError(err)
	case errors.Is(err, transport.ErrRequest):
		return apiflow.E(code.ClientError, messageOf(err),
			apiflow.WithReasonOption(reason.RequestInvalid),
			apiflow.WithCauseOption(err))
	}
	if st, ok := status.FromError(err); ok {
		return grpcError(st, err)
	}
	return apiflow.E(code.ClientError, messageOf(err),
		apiflow.WithReasonOption(reason.TransportOther),
		apiflow.WithCauseOption(err))
}

func timeoutError(err error) *apiflow.Error {
	return apiflow.E(code.TimeoutError, mapper.NoticeTimeout,
		apiflow.WithReasonOption(reason.TransportDeadline),
		apiflow.WithCauseOption(err))
}

func networkError(err error) *apiflow.Error {
	return apiflow.E(code.NetworkError, mapper.NoticeNetwork,
		apiflow.WithReasonOption(reason.TransportNetwork),
		apiflow.WithCauseOption(err))
}

func grpcError(st *status.Status, err error) *apiflow.Error {
	switch st.Code() {
	case codes.DeadlineExceeded:
		return timeoutError(err)
	case codes.Unavailable:
		return networkError(err)
	case codes.Unauthenticated:
		return apiflow.E(code.Unauthorized, mapper.NoticeUnauthorized,
			apiflow.WithReasonOption(reason.StatusUnauthorized),
			apiflow.WithCodeOption(http.StatusUnauthorized),
			apiflow.WithCauseOption(err))
	case codes.PermissionDenied:
		return apiflow.E(code.Unauthorized, mapper.NoticeUnauthorized,
			apiflow.WithReasonOption(reason.StatusForbidden),
			apiflow.WithCodeOption(http.StatusForbidden),
			apiflow.WithCauseOption(err))
	}
	msg := st.Message()
	if msg == "" {
		msg = FallbackMessage
	}
	return apiflow.E(code.ClientError, msg,
		apiflow.WithReasonOption(GRPCReason(st.Code())),
		apiflow.WithCodeOption(int(st.Code())),
		apiflow.WithCauseOption(err))
}

// GRPCReason returns "grpc.<code>" in snake case, e.g. "grpc.invalid_argument".
func GRPCReason(gc codes.Code) reason.Reason {
	var b strings.Builder
	prevLower := false
	for _, r := range gc.String() {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
			prevLower = false
		} else {
			prevLower = true
		}
		b.WriteRune(r)
	}
	r, err := reason.Parse(string(reason.GRPCPrefix) + "." + b.String())
	if err != nil {
		return reason.GRPCPrefix
	}
	return r
}

func messageOf(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}

// surface shows the notice and escalates, each at most once per guarded
// request.
func (c *Classifier) surface(ctx context.Context, e *apiflow.Error) {
	c.log.DebugContext(ctx, "classified",
		slog.String("kind", string(e.Kind)),
		slog.String("reason", string(e.Reason)),
		slog.Int("code", e.Code),
		slog.String("message", e.Message),
	)
	if firstNotice(ctx) && c.cfg.Notifier != nil {
		msg := c.cfg.Mapper.Notice(e.Kind, e.Reason)
		if msg == "" {
			msg = e.Message
		}
		if msg == "" {
			msg = FallbackMessage
		}
		d := c.cfg.NoticeDuration
		if e.Kind == code.Unauthorized {
			d = c.cfg.UnauthorizedNoticeDuration
		}
		c.cfg.Notifier.Notify(msg, d)
	}
	if e.Kind == code.Unauthorized && firstEscalation(ctx) {
		c.scheduleRedirect(ctx)
	}
}

// scheduleRedirect replaces any pending redirect with a new one.
func (c *Classifier) scheduleRedirect(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	c.log.WarnContext(ctx, "session expired, redirecting", slog.String("route", c.cfg.LoginRoute))
	c.timer = time.AfterFunc(c.cfg.RedirectDelay, func() { c.fire(seq) })
}

func (c *Classifier) fire(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	if c.cfg.Navigator == nil {
		return
	}
	if err := c.cfg.Navigator.ReplaceAll(c.cfg.LoginRoute); err != nil {
		c.log.Error("login redirect failed", slog.Any("err", err))
	}
}

// Close cancels a pending redirect. Later escalations are ignored.
func (c *Classifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

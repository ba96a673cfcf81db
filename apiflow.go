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

package apiflow

import (
	"errors"
	"fmt"

	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/reason"
)

// Error is the classified error every failed request resolves to.
//
// It carries:
//   - Kind: the classification (required), one of the code package kinds;
//   - Reason: optional refinement such as "status.forbidden";
//   - Code: numeric status or business code (HTTP status when there was one);
//   - Message: human-oriented text, safe to show in a notification;
//   - Data: the raw payload that accompanied the failure, if any;
//   - Details: extra key/value context for logs;
//   - Cause: the wrapped underlying error.
//
// WithX helpers return a shallow copy, so an Error can be shared freely.
type Error struct {
	Kind    code.Code
	Reason  reason.Reason
	Code    int
	Message string
	Data    any
	Details map[string]any
	Cause   error
}

// E constructs an Error and applies opts in order.
//
//	return apiflow.E(code.ClientError, "Request failed with status: 404",
//	    apiflow.WithCodeOption(404),
//	    apiflow.WithReasonOption(reason.StatusClient),
//	)
func E(k code.Code, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error renders "<kind>[:<reason>][(<code>)]: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	head := string(e.Kind)
	if e.Reason != "" {
		head += ":" + string(e.Reason)
	}
	if e.Code != 0 {
		head += fmt.Sprintf("(%d)", e.Code)
	}
	return head + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by Kind, and by Code when the target sets one.
// This lets callers write errors.Is(err, apiflow.ErrUnauthorized).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason) }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() int { return e.Code }

// WithReason returns a copy of e with r set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithCode returns a copy of e with the numeric code set.
func (e *Error) WithCode(c int) *Error {
	cp := *e
	cp.Code = c
	return &cp
}

// WithMessage returns a copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithData returns a copy of e carrying the raw payload.
func (e *Error) WithData(data any) *Error {
	cp := *e
	cp.Data = data
	return &cp
}

// WithDetail returns a copy of e with one extra detail. The map is always
// copied.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a copy of e with kv merged into Details; kv wins on
// conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// Sentinel targets for errors.Is. They match any Error of the same kind.
var (
	ErrUnauthorized = &Error{Kind: code.Unauthorized}
	ErrClient       = &Error{Kind: code.ClientError}
	ErrNetwork      = &Error{Kind: code.NetworkError}
	ErrTimeout      = &Error{Kind: code.TimeoutError}
	ErrUnknown      = &Error{Kind: code.Unknown}
)

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain, or code.Empty.
func KindOf(err error) code.Code {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return code.Empty
}

// IsKind reports whether err classifies as k.
func IsKind(err error, k code.Code) bool {
	return KindOf(err) == k
}

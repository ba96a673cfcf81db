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

package adapter

import (
	"errors"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/apis"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/reason"
)

// ToDescriptor flattens a classified error together with its resolution
// into an ErrorDescriptor for structured logs and gRPC status details.
func ToDescriptor(e *apiflow.Error, res apis.Resolution) apis.ErrorDescriptor {
	if e == nil {
		return apis.ErrorDescriptor{}
	}
	return apis.ErrorDescriptor{
		Kind:       string(e.Kind),
		Reason:     string(e.Reason),
		Code:       e.Code,
		HTTPStatus: res.HTTP,
		GRPCCode:   int(res.GRPC),
		Message:    e.Message,
		Notice:     res.Notice,
	}
}

// ToView converts a classified error into the public error body. Code is
// the error's own code when it has one, otherwise the resolved HTTP status,
// so the body always agrees with some status. No redaction is applied.
func ToView(e *apiflow.Error, res apis.Resolution) apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	c := e.Code
	if c == 0 {
		c = res.HTTP
	}
	return apis.ErrorView{
		Code:    c,
		Message: e.Message,
		Kind:    string(e.Kind),
		Reason:  string(e.Reason),
	}
}

// FromError returns err as a classified error. A *apiflow.Error in the
// chain is returned as is; otherwise the kind, reason and code are taken
// from the apis interfaces when err implements them, and default to
// unknown.
func FromError(err error) *apiflow.Error {
	if err == nil {
		return nil
	}
	if e, ok := apiflow.As(err); ok {
		return e
	}
	k := code.Unknown
	var ke apis.KindedError
	if errors.As(err, &ke) {
		if parsed, perr := code.Parse(ke.ErrorKind()); perr == nil && code.Known(parsed) {
			k = parsed
		}
	}
	e := apiflow.E(k, err.Error(), apiflow.WithCauseOption(err))
	var re apis.ReasonedError
	if errors.As(err, &re) {
		if r, perr := reason.Parse(re.ErrorReason()); perr == nil {
			e = e.WithReason(r)
		}
	}
	var ce apis.CodedError
	if errors.As(err, &ce) {
		e = e.WithCode(ce.ErrorCode())
	}
	return e
}

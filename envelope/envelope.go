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

// Package envelope holds the wire shapes exchanged with the backend: the
// success Envelope, the error body and the raw Response a transport returns.
package envelope

import (
	"encoding/json"
	"net/http"
)

// DefaultCode is the business code of a successful base envelope.
const DefaultCode = 2000

// DefaultMsg accompanies DefaultCode.
const DefaultMsg = "Operation successful"

// Envelope is the standard response wrapper: {code, data?, msg?, total?, more?}.
// Code is a business code, distinct from the HTTP status.
type Envelope struct {
	Code  int    `json:"code"`
	Data  any    `json:"data,omitempty"`
	Msg   string `json:"msg,omitempty"`
	Total *int   `json:"total,omitempty"`
	More  *bool  `json:"more,omitempty"`
}

// Base returns {code: 2000, data, msg}.
func Base(data any) Envelope {
	return Envelope{Code: DefaultCode, Data: data, Msg: DefaultMsg}
}

// List returns a paginated envelope. A negative total means len(items).
func List[T any](items []T, total int, more bool) Envelope {
	if total < 0 {
		total = len(items)
	}
	if items == nil {
		items = []T{}
	}
	return Envelope{Code: DefaultCode, Data: items, Msg: DefaultMsg, Total: &total, More: &more}
}

// ErrorBody is the body paired with a non-2xx status: {code, message}.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Response is a completed transport exchange, mock or real.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON builds a Response with a JSON-encoded body.
func JSON(status int, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return &Response{Status: status, Header: h, Body: b}, nil
}

// OK reports whether Status is below 400.
func (r *Response) OK() bool { return r.Status < http.StatusBadRequest }

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// ErrorBody decodes the body as an ErrorBody. ok is false when the body is
// not a JSON object with a message.
func (r *Response) ErrorBody() (ErrorBody, bool) {
	var eb ErrorBody
	if err := json.Unmarshal(r.Body, &eb); err != nil || eb.Message == "" {
		return ErrorBody{}, false
	}
	return eb, true
}

// Payload decodes the body into a generic value for error Data. Non-JSON
// bodies come back as a string.
func (r *Response) Payload() any {
	if len(r.Body) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return string(r.Body)
	}
	return v
}

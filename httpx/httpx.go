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

// Package httpx writes classified errors and response envelopes as HTTP
// responses. Error bodies keep the backend's `{code, message}` shape, with
// kind and reason added.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"dirpx.dev/apiflow/adapter"
	"dirpx.dev/apiflow/apis"
	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/mapper"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Meta carries optional context the HTTP layer adds on top of the error.
type Meta struct {
	RequestID         string
	RetryAfterSeconds int
}

// Writer turns errors and envelopes into HTTP responses.
type Writer struct {
	// Mapper resolves the status; nil uses the package defaults.
	Mapper apis.Mapper
	Logger *slog.Logger
}

func (w Writer) mapper() apis.Mapper {
	if w.Mapper == nil {
		return mapper.Default()
	}
	return w.Mapper
}

func (w Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Logger
}

// WriteError writes err with the status the mapper resolves for it. A nil
// err writes nothing.
//
// The body is built as a structpb.Struct and encoded with protojson so the
// same view can travel in gRPC status details.
func (w Writer) WriteError(rw http.ResponseWriter, err error, meta Meta) {
	e := adapter.FromError(err)
	if e == nil {
		return
	}
	res := w.mapper().Resolve(e.Kind, e.Reason)
	st, perr := ViewStruct(adapter.ToView(e, res))
	if perr != nil {
		w.logger().Error("error view encoding failed", slog.Any("err", perr))
		http.Error(rw, e.Message, res.HTTP)
		return
	}
	b, perr := protojson.Marshal(st)
	if perr != nil {
		w.logger().Error("error view encoding failed", slog.Any("err", perr))
		http.Error(rw, e.Message, res.HTTP)
		return
	}

	h := rw.Header()
	h.Set("Content-Type", "application/json")
	if meta.RequestID != "" {
		h.Set("X-Request-Id", meta.RequestID)
	}
	if meta.RetryAfterSeconds > 0 {
		h.Set("Retry-After", strconv.Itoa(meta.RetryAfterSeconds))
	}
	rw.WriteHeader(res.HTTP)
	_, _ = rw.Write(b)
}

// ViewStruct converts an ErrorView into a protobuf Struct. Empty kind and
// reason are left out.
func ViewStruct(v apis.ErrorView) (*structpb.Struct, error) {
	m := map[string]any{
		"code":    v.Code,
		"message": v.Message,
	}
	if v.Kind != "" {
		m["kind"] = v.Kind
	}
	if v.Reason != "" {
		m["reason"] = v.Reason
	}
	return structpb.NewStruct(m)
}

// WriteJSON writes v as JSON with status.
func (w Writer) WriteJSON(rw http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.logger().Error("response encoding failed", slog.Any("err", err))
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_, _ = rw.Write(b)
}

// WriteEnvelope writes data wrapped in the success envelope with status 200.
func (w Writer) WriteEnvelope(rw http.ResponseWriter, data any) {
	w.WriteJSON(rw, http.StatusOK, envelope.Base(data))
}

// WriteResponse copies a raw response, as produced by a transport or the
// mock dispatcher, onto rw.
func (w Writer) WriteResponse(rw http.ResponseWriter, resp *envelope.Response) {
	if resp == nil {
		rw.WriteHeader(http.StatusNoContent)
		return
	}
	h := rw.Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	if h.Get("Content-Type") == "" && len(resp.Body) > 0 {
		h.Set("Content-Type", "application/json")
	}
	rw.WriteHeader(resp.Status)
	_, _ = rw.Write(resp.Body)
}

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

// Package mockserver serves a mock route table over real HTTP, so clients
// that cannot embed the in-process dispatcher see the same responses.
package mockserver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/httpx"
	"dirpx.dev/apiflow/mockapi"
	"dirpx.dev/apiflow/reason"
	"dirpx.dev/apiflow/request"
	"dirpx.dev/apiflow/transport"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// RequestIDHeader is echoed on every response.
const RequestIDHeader = "X-Request-Id"

// Config configures New.
type Config struct {
	Table *mockapi.Table
	// Delay is the simulated latency; zero answers at once.
	Delay  mockapi.Jitter
	Logger *slog.Logger
}

// Server is an http.Handler answering from a mock table.
type Server struct {
	router  *mux.Router
	adapter *mockapi.Adapter
	w       httpx.Writer
	log     *slog.Logger
}

// New registers every route of cfg.Table on a gorilla/mux router, in table
// order, so the first registered route wins as it does in-process.
func New(cfg Config) (*Server, error) {
	if cfg.Table == nil {
		return nil, errors.New("mockserver: table is required")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		router: mux.NewRouter(),
		adapter: mockapi.NewAdapter(mockapi.Config{
			Table:   cfg.Table,
			Enabled: true,
			Delay:   cfg.Delay,
			Logger:  log,
		}),
		w:   httpx.Writer{Logger: log},
		log: log,
	}
	// Match on the escaped path so an escaped "/" in a parameter does not
	// split it, as in-process.
	s.router.UseEncodedPath()
	s.router.Use(s.requestID)
	for _, rt := range cfg.Table.Routes() {
		if strings.HasSuffix(rt.Pattern, "/*") {
			s.router.PathPrefix(strings.TrimSuffix(rt.Pattern, "*")).Methods(rt.Method).HandlerFunc(s.serve)
			continue
		}
		s.router.Path(rt.Pattern).Methods(rt.Method).HandlerFunc(s.serve)
	}
	s.router.NotFoundHandler = http.HandlerFunc(s.notFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.w.WriteError(w, apiflow.E(code.ClientError, "Request body too large",
			apiflow.WithReasonOption(reason.RequestInvalid),
			apiflow.WithCodeOption(http.StatusRequestEntityTooLarge)), httpx.Meta{RequestID: id})
		return
	}
	d := &request.Descriptor{
		ID:     id,
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}
	if len(body) > 0 {
		d.Body = body
	}

	resp, err := s.adapter.RoundTrip(r.Context(), d)
	switch {
	case errors.Is(err, mockapi.ErrNoFallback):
		s.notFound(w, r)
	case errors.Is(err, transport.ErrRequest):
		s.writeStatus(w, http.StatusBadRequest, "Invalid request path")
	case err != nil:
		s.log.WarnContext(r.Context(), "mock request failed", slog.String("request_id", id), slog.Any("err", err))
		s.writeStatus(w, http.StatusServiceUnavailable, "Mock unavailable")
	default:
		s.w.WriteResponse(w, resp)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeStatus(w, http.StatusNotFound, fmt.Sprintf("No mock route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeStatus(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path))
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	s.w.WriteJSON(w, status, envelope.ErrorBody{Code: status, Message: msg})
}

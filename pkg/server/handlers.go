package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.accessLog)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/fragment", s.handleFragment)
	r.Get("/signals", s.handleSignals)
	r.Post("/signals/{name}", s.handleSet)
	r.Post("/signals/{name}/toggle", s.handleToggle)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if p := s.config.MetricsPath; p != "" && p != "-" {
		r.Handle(p, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// accessLog logs each request at debug level, failures at warn.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := s.logger.Debug
		if status >= 400 {
			level = s.logger.Warn
		}
		level("request done",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}

func (s *Server) currentHTML(r *http.Request) (string, error) {
	var (
		html    string
		htmlErr error
	)
	err := s.dispatchRaw(r.Context(), func() {
		html, htmlErr = s.tree.HTML()
	})
	if err != nil {
		return "", err
	}
	return html, htmlErr
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := s.currentHTML(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	var buf bytes.Buffer
	opts := render.PageOptions{Title: s.config.Title, LiveURL: "/ws"}
	if err := s.renderer.RenderPage(&buf, opts, vdom.Raw(body)); err != nil {
		s.writeError(w, errors.New("D012").Wrap(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveRender("page", time.Since(start))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	body, err := s.currentHTML(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := s.dispatchRaw(r.Context(), func() { values = s.tree.Values() }); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value := r.FormValue("value")
	s.write(w, r, name, "set", func() error { return s.tree.Set(name, value) })
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.write(w, r, name, "toggle", func() error { return s.tree.Toggle(name) })
}

// write applies op on the loop inside a span and replies with all values.
func (s *Server) write(w http.ResponseWriter, r *http.Request, name, action string, op func() error) {
	ctx, span := s.tracer.Start(r.Context(), "declarative.signal.write",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("declarative.signal", name),
			attribute.String("declarative.action", action),
		))
	defer span.End()

	var (
		opErr  error
		values map[string]any
	)
	err := s.dispatch(ctx, func() {
		opErr = op()
		values = s.tree.Values()
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.SignalWritten(name)
	}
	s.logger.Info("signal written", "signal", name, "action", action, "value", values[name])
	writeJSON(w, http.StatusOK, values)
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case "D010":
		status = http.StatusNotFound
	case "D011":
		status = http.StatusBadRequest
	}
	if err == ErrClosed {
		status = http.StatusServiceUnavailable
	}

	e := errors.FromError(err, "D012")
	writeJSON(w, status, errorBody{
		Code:       e.Code,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

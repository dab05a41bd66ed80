package ruleserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/rulebuilder/pkg/httpserver"
	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
	"github.com/dmitrymomot/rulebuilder/pkg/logger"
	"github.com/dmitrymomot/rulebuilder/pkg/ruleset"
	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

// DefaultMaxBodySize caps validate request bodies.
const DefaultMaxBodySize int64 = 1 << 20

// EngineFactory builds the engine that validates records for one rule set.
type EngineFactory func(name string, set *ruleset.Set) (*validator.Engine, error)

// DefaultEngineFactory builds an engine from the set's own locale and
// attribute names.
func DefaultEngineFactory(_ string, set *ruleset.Set) (*validator.Engine, error) {
	return validator.New(set.EngineOptions()...), nil
}

// Server serves a fixed collection of rule sets.
type Server struct {
	sets    map[string]*ruleset.Set
	engines map[string]*validator.Engine
	log     *slog.Logger
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access logs and rejected records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxBodySize limits validate request bodies to n bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New builds one engine per rule set with factory (DefaultEngineFactory
// when nil).
func New(sets map[string]*ruleset.Set, factory EngineFactory, opts ...Option) (*Server, error) {
	if len(sets) == 0 {
		return nil, ErrNoRuleSets
	}
	if factory == nil {
		factory = DefaultEngineFactory
	}

	s := &Server{
		sets:    maps.Clone(sets),
		engines: make(map[string]*validator.Engine, len(sets)),
		log:     logger.Discard(),
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("ruleserver"))

	for _, name := range s.Names() {
		engine, err := factory(name, s.sets[name])
		if err != nil {
			return nil, errors.Join(ErrRuleSetEngine, fmt.Errorf("rule set %q: %w", name, err))
		}
		s.engines[name] = engine
	}
	return s, nil
}

// Names returns the served rule set names in sorted order.
func (s *Server) Names() []string {
	return slices.Sorted(maps.Keys(s.sets))
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(negotiateLocale)

	r.Get("/healthz", httpserver.HealthHandler(s.log))
	r.Get("/readyz", httpserver.HealthHandler(s.log, s.ready))

	r.Route("/rulesets", func(r chi.Router) {
		r.Get("/", s.listSets)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.showSet)
			r.Post("/validate", s.validate)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	return r
}

func (s *Server) ready(context.Context) error {
	if len(s.engines) == 0 {
		return ErrNoRuleSets
	}
	return nil
}

type setView struct {
	Name       string              `json:"name"`
	Locale     string              `json:"locale,omitempty"`
	Attributes map[string]string   `json:"attributes,omitempty"`
	Rules      map[string][]string `json:"rules"`
}

func (s *Server) listSets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Data: s.Names()})
}

func (s *Server) showSet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	set, ok := s.sets[name]
	if !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("rule set %q not found", name))
		return
	}

	view := setView{
		Name:       name,
		Locale:     set.Locale(),
		Attributes: set.Attributes(),
		Rules:      make(map[string][]string),
	}
	for _, field := range set.Fields() {
		view.Rules[field] = set.Tokens(field)
	}
	writeJSON(w, http.StatusOK, Response{Data: view})
}

type validateResult struct {
	Valid bool `json:"valid"`
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")
	set, ok := s.sets[name]
	if !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("rule set %q not found", name))
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBodyTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "failed to read request body")
		return
	}

	out, err := set.ValidateJSON(ctx, s.engines[name], raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, err.Error())
		return
	}

	meta := map[string]any{"rule_set": name}
	if out.Passed() {
		writeJSON(w, http.StatusOK, Response{Data: validateResult{Valid: true}, Meta: meta})
		return
	}

	details := make(map[string][]string)
	for _, field := range out.Fields() {
		details[field] = out.Get(field)
	}
	s.log.DebugContext(ctx, "record rejected", slog.String("rule_set", name), logger.Failures(len(out.AllMessages())))
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Meta: meta,
		Error: &ErrorDetail{
			Code:    CodeValidationFailed,
			Message: validator.ErrValidationFailed.Error(),
			Details: details,
		},
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// negotiateLocale stores the requested message locale in the request context.
func negotiateLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if locale := requestLocale(r); locale != "" {
			r = r.WithContext(i18n.WithLocale(r.Context(), locale))
		}
		next.ServeHTTP(w, r)
	})
}

func requestLocale(r *http.Request) string {
	if q := r.URL.Query().Get("locale"); q != "" {
		return i18n.Normalize(q)
	}

	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		if tag != language.Und {
			return tag.String()
		}
	}
	return ""
}

// RequestIDExtractor adds the request id to log records. Pass it to
// logger.WithContextExtractors.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return slog.String("request_id", id), true
	}
	return slog.Attr{}, false
}

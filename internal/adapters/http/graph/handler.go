// Package graph serves the catalog over GraphQL.
package graph

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	repository "github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/domain/dice"
	"github.com/okian/marquee/pkg/logger"
	"github.com/okian/marquee/pkg/metrics"
)

// SDL is the schema served at /graphql.
//
//go:embed schema.graphql
var SDL string

// maxBodyBytes bounds a POSTed GraphQL request.
const maxBodyBytes = 1 << 20

// Handler executes GraphQL requests against the catalog.
type Handler struct {
	schema *graphql.Schema
	logger logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler parses the schema and binds it to catalog.
func NewHandler(catalog Catalog, opts ...Option) (*Handler, error) {
	h := &Handler{logger: logger.Nop()}
	for _, opt := range opts {
		opt(h)
	}

	root := &rootResolver{catalog: catalog, logger: h.logger}
	schema, err := graphql.ParseSchema(SDL, root,
		graphql.Logger(panicLogger{h.logger}),
		graphql.MaxDepth(8),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	h.schema = schema
	return h, nil
}

// Register attaches the GraphQL endpoint to mux.
//
//	GET  /graphql?query=...&operationName=...&variables=...
//	POST /graphql {"query": ..., "operationName": ..., "variables": {...}}
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/graphql", h)
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := decode(r)
	if err != nil {
		metrics.RecordGraphQLRequest(metrics.OutcomeInvalid)
		status := http.StatusBadRequest
		if errors.Is(err, errMethod) {
			w.Header().Set("Allow", "GET, POST")
			status = http.StatusMethodNotAllowed
		}
		writeResponse(w, status, &graphql.Response{
			Errors: []*gqlerrors.QueryError{{Message: err.Error()}},
		})
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	result := outcome(resp.Errors)
	metrics.RecordGraphQLRequest(result)

	h.logger.Debug(r.Context(), "graphql request",
		logger.String("operation", req.OperationName),
		logger.String("outcome", result),
		logger.Int("errors", len(resp.Errors)),
		logger.Float64("durationMs", float64(time.Since(start).Microseconds())/1000),
	)
	writeResponse(w, http.StatusOK, resp)
}

var errMethod = fmt.Errorf("%w: method not allowed", ErrBadRequest)

func decode(r *http.Request) (request, error) {
	var req request
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if v := q.Get("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &req.Variables); err != nil {
				return req, fmt.Errorf("%w: variables: %w", ErrBadRequest, err)
			}
		}
	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return req, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		if err := json.Unmarshal(body, &req); err != nil {
			return req, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	default:
		return req, errMethod
	}
	if req.Query == "" {
		return req, fmt.Errorf("%w: missing query", ErrBadRequest)
	}
	return req, nil
}

// outcome classifies a response by its first error.
func outcome(errs []*gqlerrors.QueryError) string {
	if len(errs) == 0 {
		return metrics.OutcomeOK
	}
	cause := errs[0].ResolverError
	switch {
	case cause == nil:
		// parse or validation failure
		return metrics.OutcomeInvalid
	case errors.Is(cause, repository.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(cause, dice.ErrInvalidArgument), errors.Is(cause, ErrIntRange):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func writeResponse(w http.ResponseWriter, status int, resp *graphql.Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// panicLogger reports resolver panics through the service logger.
type panicLogger struct {
	l logger.Logger
}

func (p panicLogger) LogPanic(ctx context.Context, value interface{}) {
	metrics.RecordErrorByComponent("graphql", "panic")
	p.l.Error(ctx, "graphql resolver panic", logger.Any("panic", value))
}

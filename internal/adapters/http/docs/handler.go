// Package docs serves the API reference, the GraphiQL console and the
// landing page.
package docs

import (
	"context"
	"net/http"
)

type options struct {
	graphiql bool
}

// Option configures Register.
type Option func(*options)

// WithGraphiQL toggles the /graphiql console. It is on by default.
func WithGraphiQL(enabled bool) Option {
	return func(o *options) { o.graphiql = enabled }
}

// Register attaches the documentation routes to mux.
// Routes:
//
//	GET /              -> landing page
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> embedded OpenAPI spec
//	GET /graphiql      -> GraphiQL console for /graphql (optional)
func Register(_ context.Context, mux *http.ServeMux, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	o := options{graphiql: true}
	for _, opt := range opts {
		opt(&o)
	}

	index := page("index.html")
	mux.HandleFunc("GET /{$}", html(index))

	mux.HandleFunc("GET /api-docs", html([]byte(redocHTML)))

	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	if o.graphiql {
		mux.HandleFunc("GET /graphiql", html(page("graphiql.html")))
	}
}

func html(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

// Minimal HTML that loads ReDoc from its CDN and renders /openapi.yaml.
const redocHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>API Docs - ReDoc</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`

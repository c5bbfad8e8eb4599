package docs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestDocsHandler(t *testing.T) {
	convey.Convey("Given a docs handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering with defaults", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				w := serve(mux, "/openapi.yaml")

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "/movies/{index}/runtime")
			})

			convey.Convey("And it should handle /api-docs route", func() {
				w := serve(mux, "/api-docs")

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "redoc-container")
			})

			convey.Convey("And it should serve the GraphiQL console", func() {
				w := serve(mux, "/graphiql")

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "url: '/graphql'")
			})

			convey.Convey("And it should serve the landing page only at the root", func() {
				root := serve(mux, "/")
				other := serve(mux, "/nope")

				convey.So(root.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(root.Body.String(), convey.ShouldContainSubstring, "Marquee")
				convey.So(other.Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})

		convey.Convey("When registering with the console disabled", func() {
			Register(ctx, mux, WithGraphiQL(false))

			convey.Convey("Then /graphiql should not be served", func() {
				convey.So(serve(mux, "/graphiql").Code, convey.ShouldEqual, http.StatusNotFound)
				convey.So(serve(mux, "/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestDocsHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		convey.Convey("When registering the docs handler", func() {
			convey.Convey("Then it should panic", func() {
				convey.So(func() {
					Register(context.Background(), nil)
				}, convey.ShouldPanic)
			})
		})
	})
}

func TestEmbeddedFS(t *testing.T) {
	convey.Convey("Given the embedded pages", t, func() {
		convey.Convey("Then both pages should be present", func() {
			for _, name := range []string{"/index.html", "/graphiql.html"} {
				f, err := FS().Open(name)
				convey.So(err, convey.ShouldBeNil)
				_ = f.Close()
			}
		})
	})
}

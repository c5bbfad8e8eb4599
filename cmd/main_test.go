package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	service "github.com/okian/marquee/internal/app"
	"github.com/okian/marquee/internal/config"
	"github.com/okian/marquee/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MARQUEE_ADDR", ":8080")
			_ = os.Setenv("MARQUEE_MAX_DICE_ROLLS", "5")
			defer func() {
				_ = os.Unsetenv("MARQUEE_ADDR")
				_ = os.Unsetenv("MARQUEE_MAX_DICE_ROLLS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxDiceRolls, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When mapping configuration onto options", func() {
			cfg := config.New()
			cfg.SeedCatalog = false
			cfg.RandomSeed = 7
			cfg.LogFile = t.TempDir() + "/marquee.log"

			convey.Convey("Then the service should honour the catalog settings", func() {
				svc := startedService(serviceOptions(cfg, logger.Nop())...)
				convey.So(svc.CountMovies(context.Background()), convey.ShouldEqual, 0)
				convey.So(svc.GetStats()["maxDiceRolls"], convey.ShouldEqual, 10_000)
			})

			convey.Convey("And the logger should get a file sink", func() {
				convey.So(len(loggerOptions(cfg)), convey.ShouldEqual, 2)
				convey.So(len(loggerOptions(config.New())), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When extracting the port", func() {
			convey.Convey("Then the last colon should split it", func() {
				convey.So(port(":4000"), convey.ShouldEqual, "4000")
				convey.So(port("[::1]:8080"), convey.ShouldEqual, "8080")
				convey.So(port("4000"), convey.ShouldEqual, "4000")
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given the full route table", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := startedService(serviceOptions(cfg, logger.Nop())...)
		mux, err := newMux(ctx, cfg, svc, logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
			return w
		}

		convey.Convey("When requesting every surface", func() {
			convey.Convey("Then each should answer", func() {
				convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/movies/count").Body.String(), convey.ShouldContainSubstring, `"count":14`)
				convey.So(get("/graphql?query=%7BcountMovies%7D").Body.String(), convey.ShouldContainSubstring, `"countMovies":14`)
				convey.So(get("/graphiql").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When the GraphQL and REST surfaces share a catalog", func() {
			w := httptest.NewRecorder()
			body := strings.NewReader(`{"query":"mutation { deleteMovie(index: 0) { title } }"}`)
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", body))

			convey.Convey("Then a GraphQL delete should be visible over REST", func() {
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "Inception")
				convey.So(get("/movies/0").Body.String(), convey.ShouldContainSubstring, "The Dark Knight")
			})
		})
	})

	convey.Convey("Given the console is disabled", t, func() {
		cfg := config.New()
		cfg.GraphiQL = false
		mux, err := newMux(context.Background(), cfg, startedService(serviceOptions(cfg, logger.Nop())...), logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then /graphiql should not be served", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graphiql", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When running the updaters until their context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			svc := startedService(service.WithLogger(logger.Nop()))

			convey.Convey("Then they should return without panicking", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
				convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating metrics directly", func() {
			svc := startedService(service.WithLogger(logger.Nop()))

			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}

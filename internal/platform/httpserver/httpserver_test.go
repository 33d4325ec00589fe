package httpserver

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"carepath/pkg/testutil"
)

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func TestRouter(t *testing.T) {
	healthy := healthFunc(func(context.Context) error { return nil })
	broken := healthFunc(func(context.Context) error { return errors.New("connection refused") })

	testutil.Given(t, "all dependencies are healthy", func(t *testing.T) {
		router := Router(map[string]HealthChecker{"postgres": healthy, "redis": healthy})

		testutil.When(t, "probing /healthz", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusOK)
		})

		testutil.When(t, "scraping /metrics", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
			testutil.AssertStatus(t, rr, http.StatusOK)
		})
	})

	testutil.Given(t, "one dependency is down", func(t *testing.T) {
		router := Router(map[string]HealthChecker{"postgres": healthy, "redis": broken})

		testutil.Then(t, "the probe reports unavailable", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		})
	})

	testutil.Given(t, "an optional dependency was never configured", func(t *testing.T) {
		router := Router(map[string]HealthChecker{"postgres": healthy, "redis": nil})

		testutil.Then(t, "nil checkers are skipped", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusOK)
		})
	})
}

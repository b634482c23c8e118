package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveResult(t *testing.T) {
	c := NewCollector()

	c.ObserveResult(200, 0)
	c.ObserveResult(200, 0)
	c.ObserveResult(422, 3)
	c.ObserveEncodeFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.results.WithLabelValues("ok", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.results.WithLabelValues("failure", "422")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.errorObjects.WithLabelValues("422")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.encodeFailures))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	c := NewCollector()

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/items/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestMiddlewareWithoutRouter(t *testing.T) {
	c := NewCollector()
	h := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "unmatched", "200")))
}

func TestHandlerExposition(t *testing.T) {
	c := NewCollector()
	c.ObserveResult(200, 0)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `webresult_results_total{outcome="ok",status="200"} 1`), body)
}

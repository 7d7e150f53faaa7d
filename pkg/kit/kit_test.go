package kit_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ProductAPI/pkg/kit"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAPIKey(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{"match", "secret", "secret", http.StatusOK},
		{"missing", "secret", "", http.StatusUnauthorized},
		{"mismatch", "secret", "secreT", http.StatusUnauthorized},
		{"prefix", "secret", "secret2", http.StatusUnauthorized},
		{"empty configured key", "", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("x-api-key", tc.header)
			}
			rec := httptest.NewRecorder()

			kit.APIKey(tc.key)(okHandler).ServeHTTP(rec, req)

			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized. Invalid API Key."}`, rec.Body.String())
			}
		})
	}
}

func TestWriteProblem(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	cases := []struct {
		name   string
		err    error
		status int
		body   string
		level  zapcore.Level
	}{
		{"validation", kit.Validation("bad"), http.StatusBadRequest, `{"error":"ValidationError","message":"bad"}`, zapcore.WarnLevel},
		{"not found", kit.NotFound("gone"), http.StatusNotFound, `{"error":"NotFoundError","message":"gone"}`, zapcore.WarnLevel},
		{"wrapped", errors.Join(errors.New("ctx"), kit.NotFound("gone")), http.StatusNotFound, `{"error":"NotFoundError","message":"gone"}`, zapcore.WarnLevel},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, `{"error":"InternalError","message":"Internal server error"}`, zapcore.ErrorLevel},
		{"no status", &kit.Error{Kind: "Custom", Message: "m"}, http.StatusInternalServerError, `{"error":"Custom","message":"m"}`, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs.TakeAll()
			rec := httptest.NewRecorder()

			kit.WriteProblem(rec, httptest.NewRequest(http.MethodGet, "/", nil), log, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rec.Body.String())

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, tc.level, entries[0].Level)
		})
	}
}

func TestHandle(t *testing.T) {
	h := kit.Handle(zap.NewNop(), func(w http.ResponseWriter, r *http.Request) error {
		if r.URL.Query().Get("fail") != "" {
			return kit.Validation("nope")
		}
		kit.WriteJSON(w, http.StatusCreated, map[string]string{"ok": "yes"})
		return nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?fail=1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogging_RecordsArrivalBeforeHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	var seenAtHandler int
	h := chimw.RequestID(kit.Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		seenAtHandler = logs.Len()
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products?x=1", nil))

	assert.Equal(t, 1, seenAtHandler)

	arrived := logs.FilterMessage("request received").All()
	require.Len(t, arrived, 1)
	fields := arrived[0].ContextMap()
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "/api/products?x=1", fields["path"])
	assert.NotEmpty(t, fields["request_id"])
	_, err := time.Parse(time.RFC3339Nano, fields["timestamp"].(string))
	assert.NoError(t, err)

	done := logs.FilterMessage("request").All()
	require.Len(t, done, 1)
	assert.EqualValues(t, http.StatusTeapot, done[0].ContextMap()["status"])
}

func TestRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	log := zap.New(core)

	h := kit.Recoverer(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"InternalError","message":"Internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestMaxBody(t *testing.T) {
	var readErr error
	h := kit.MaxBody(4)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456")))

	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, readErr, &tooLarge)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := kit.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware("svc"))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	for _, p := range []string{"/items/1", "/items/2", "/elsewhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("svc", http.MethodGet, "/items/{id}", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("svc", http.MethodGet, "unmatched", "404")))
}

func TestNewLogger(t *testing.T) {
	log, err := kit.NewLogger("svc", "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = kit.NewLogger("svc", "loud")
	assert.Error(t, err)
}

func TestRunHTTPServer_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- kit.RunHTTPServer(ctx, "127.0.0.1:0", okHandler, zap.NewNop(), time.Second)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

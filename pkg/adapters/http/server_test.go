package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	requests []string
	err      error
}

func (s *stubExecutor) RunOne(_ context.Context, request string) (domain.Result, error) {
	s.requests = append(s.requests, request)
	if s.err != nil {
		return domain.Result{}, s.err
	}
	return domain.Result{Text: "done: " + request, Iterations: 1, Approved: true}, nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, r))
	return rec
}

func TestHandler_Healthz(t *testing.T) {
	rec := do(t, NewHandler(Options{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_MetricsRouteIsOptional(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, do(t, NewHandler(Options{}), http.MethodGet, "/metrics", "").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tper_active_workflows 0"))
	})
	rec := do(t, NewHandler(Options{Metrics: metrics}), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tper_active_workflows")
}

func TestHandler_Run(t *testing.T) {
	exec := &stubExecutor{}
	h := NewHandler(Options{Executor: exec})

	rec := do(t, h, http.MethodPost, "/run", `{"request": " summarize X "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"done: summarize X","iterations":1,"approved":true}`, rec.Body.String())
	assert.Equal(t, []string{"summarize X"}, exec.requests)
}

func TestHandler_RunRejectsBlank(t *testing.T) {
	exec := &stubExecutor{}
	h := NewHandler(Options{Executor: exec})

	rec := do(t, h, http.MethodPost, "/run", `{"request": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, exec.requests)

	rec = do(t, h, http.MethodPost, "/run", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_RunFailure(t *testing.T) {
	h := NewHandler(Options{Executor: &stubExecutor{err: errors.New("provider down")}})

	rec := do(t, h, http.MethodPost, "/run", `{"request": "x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"provider down"}`, rec.Body.String())
}

func TestServeListener_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, NewHandler(Options{}), nil) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"autoscaling-demo/controller/application"
	"autoscaling-demo/controller/infra"
	"autoscaling-demo/middleware/accesslog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestServer(t *testing.T, d time.Duration, loadMW ...Middleware) (*httptest.Server, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	mux := http.NewServeMux()
	Routes(mux, Handlers{
		Service: application.Service{Burner: infra.NewSpinBurner(), Duration: d},
		Logger:  zap.New(core),
	}, loadMW...)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, logs
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestHello_ReturnsGreeting(t *testing.T) {
	srv, _ := newTestServer(t, time.Millisecond)

	for i := 0; i < 3; i++ {
		code, body, hdr := get(t, srv.URL+"/")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Hello from EKS Spring Boot!", body)
		assert.Equal(t, "text/plain; charset=utf-8", hdr.Get("Content-Type"))
	}
}

func TestLoad_BlocksForDurationAndReturnsMessage(t *testing.T) {
	d := 50 * time.Millisecond
	srv, logs := newTestServer(t, d)

	start := time.Now()
	code, body, _ := get(t, srv.URL+"/load")
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Load generated for 10 seconds!", body)
	assert.GreaterOrEqual(t, elapsed, d)

	entries := logs.FilterMessage("load generated").All()
	require.Len(t, entries, 1)
	assert.GreaterOrEqual(t, entries[0].ContextMap()["iterations"], uint64(1))
}

func TestLoad_ConcurrentCallsEachTakeFullDuration(t *testing.T) {
	d := 40 * time.Millisecond
	srv, _ := newTestServer(t, d)

	var wg sync.WaitGroup
	results := make([]time.Duration, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Now()
			code, body, _ := get(t, srv.URL+"/load")
			results[i] = time.Since(start)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "Load generated for 10 seconds!", body)
		}(i)
	}
	wg.Wait()

	for i, e := range results {
		assert.GreaterOrEqualf(t, e, d, "request %d returned early", i)
	}
}

func TestHello_UnaffectedByRunningLoad(t *testing.T) {
	srv, _ := newTestServer(t, 200*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		get(t, srv.URL+"/load")
	}()

	code, body, _ := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Hello from EKS Spring Boot!", body)

	<-done
}

func TestRoutes_UnknownPathAndMethod(t *testing.T) {
	srv, _ := newTestServer(t, time.Millisecond)

	code, _, _ := get(t, srv.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, code)

	resp, err := http.Post(srv.URL+"/load", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRoutes_MiddlewareWrapsOnlyLoad(t *testing.T) {
	var order []string
	var mu sync.Mutex
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				order = append(order, name)
				mu.Unlock()
				next.ServeHTTP(w, r)
			})
		}
	}

	srv, _ := newTestServer(t, time.Millisecond, mark("outer"), mark("inner"))

	get(t, srv.URL+"/")
	assert.Empty(t, order)

	get(t, srv.URL+"/load")
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoad_FullDuration(t *testing.T) {
	if testing.Short() {
		t.Skip("burns a CPU core for 10s")
	}

	srv, _ := newTestServer(t, 0)

	start := time.Now()
	code, body, _ := get(t, srv.URL+"/load")
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Load generated for 10 seconds!", body)
	assert.GreaterOrEqual(t, elapsed, 10*time.Second)
	assert.Less(t, elapsed, 11*time.Second)
}

func TestLoad_LogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mux := http.NewServeMux()
	Routes(mux, Handlers{
		Service: application.Service{Burner: infra.NewSpinBurner(), Duration: time.Millisecond},
		Logger:  zap.New(core),
	})

	srv := httptest.NewServer(accesslog.Middleware(accesslog.Options{})(mux))
	t.Cleanup(srv.Close)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/load", nil)
	require.NoError(t, err)
	req.Header.Set(accesslog.DefaultHeader, "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("load generated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

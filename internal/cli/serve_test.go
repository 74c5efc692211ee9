package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gaugekit/pkg/cache"
	"github.com/matzehuels/gaugekit/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve"), logger)
	ts := httptest.NewServer(newServer(runner, logger).routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestServeRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path        string
		status      int
		contentType string
		prefix      string
	}{
		{"/render/svg?min=0&max=50&value=20", http.StatusOK, "image/svg+xml", ""},
		{"/render/png?value=20&kind=bar", http.StatusOK, "image/png", "\x89PNG"},
		{"/render/dot?orientation=vertical", http.StatusOK, "text/vnd.graphviz; charset=utf-8", "digraph"},
		{"/render/json?max=10&major=5", http.StatusOK, "application/json", "["},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !bytes.HasPrefix(body, []byte(tt.prefix)) {
				t.Errorf("body starts with %q, want %q", body[:min(len(body), 16)], tt.prefix)
			}
		})
	}
}

func TestServeErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/render/pdf", http.StatusBadRequest, "INVALID_FORMAT"},
		{"/render/svg?min=low", http.StatusBadRequest, "INVALID_INPUT"},
		{"/render/svg?colour=red", http.StatusBadRequest, "UNKNOWN_PROPERTY"},
		{"/render/svg?orientation=diagonal", http.StatusBadRequest, "INVALID_CONFIG"},
		{"/render/png?width=60000&height=60000", http.StatusBadRequest, "INVALID_CONFIG"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestServeRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(requestIDHeader)); err != nil {
		t.Errorf("generated request id is not a uuid: %q", resp.Header.Get(requestIDHeader))
	}
	if !strings.HasPrefix(resp.Header.Get("Server"), "gaugekit/") {
		t.Errorf("Server header = %q", resp.Header.Get("Server"))
	}

	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/version", nil)
	req.Header.Set(requestIDHeader, id)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != id {
		t.Errorf("request id = %q, want echoed %q", got, id)
	}
}

func TestServeConcurrentIdenticalRequests(t *testing.T) {
	ts := newTestServer(t)

	const n = 8
	bodies := make([][]byte, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Get(ts.URL + "/render/svg?value=42&max=80")
			if err != nil {
				t.Error(err)
				return
			}
			defer resp.Body.Close()
			bodies[i], _ = io.ReadAll(resp.Body)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if !bytes.Equal(bodies[0], bodies[i]) {
			t.Fatalf("response %d differs from response 0", i)
		}
	}
}

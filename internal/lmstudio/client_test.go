package lmstudio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	srv := httptest.NewServer(handler)
	c := New(srv.URL + "/v1")
	return c, srv.Close
}

func TestFetchModels(t *testing.T) {
	payload := `{
		"models": [
			{"key": "qwen3-8b", "type": "llm", "max_context_length": 32768,
			 "capabilities": {"trained_for_tool_use": true, "vision": false},
			 "some_future_field": 42},
			{"key": "nomic-embed", "type": "embedding", "max_context_length": 2048}
		]
	}`
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/models" {
			t.Errorf("unexpected request path: %s", r.URL.Path)
		}
		w.Write([]byte(payload))
	})
	defer done()

	models, err := c.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].Key != "qwen3-8b" || !models[0].SupportsToolCalling() || models[0].SupportsVision() {
		t.Errorf("unexpected first model: %+v", models[0])
	}
	if models[1].IsLLM() {
		t.Errorf("embedding model should not be an LLM")
	}
}

func TestFetchModelsSkipsEntriesWithoutKey(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models": [{"type": "llm"}, {"key": "ok", "type": "llm"}]}`))
	})
	defer done()

	models, err := c.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels: %v", err)
	}
	if len(models) != 1 || models[0].Key != "ok" {
		t.Errorf("expected only the keyed entry, got %+v", models)
	}
}

func TestFetchModelsMalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"not json":     "<html>oops</html>",
		"no models":    `{"data": []}`,
		"wrong shape":  `[1, 2, 3]`,
		"models null":  `{"models": null}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			defer done()

			if _, err := c.FetchModels(context.Background()); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}

func TestFetchModelsHTTPError(t *testing.T) {
	c, done := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer done()

	if _, err := c.FetchModels(context.Background()); err == nil {
		t.Error("expected error on HTTP 500")
	}
}

func TestFetchModelsUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1/v1")
	if _, err := c.FetchModels(context.Background()); err == nil {
		t.Error("expected connection error")
	}
}

func TestModelsEndpoint(t *testing.T) {
	cases := map[string]string{
		"http://localhost:1234/v1":   "http://localhost:1234/api/v1/models",
		"http://localhost:1234/v1/":  "http://localhost:1234/api/v1/models",
		"http://studio.local:9999":   "http://studio.local:9999/api/v1/models",
		"not a url":                  defaultModelsEndpoint,
		"":                           defaultModelsEndpoint,
	}
	for in, want := range cases {
		if got := modelsEndpoint(in); got != want {
			t.Errorf("modelsEndpoint(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:1234":     "http://localhost:1234/v1",
		"http://localhost:1234/":    "http://localhost:1234/v1",
		"http://localhost:1234/v1":  "http://localhost:1234/v1",
		"http://localhost:1234/v1/": "http://localhost:1234/v1",
	}
	for in, want := range cases {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

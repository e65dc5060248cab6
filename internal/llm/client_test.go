package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"golf-caddy/internal/domain"
)

func TestHTTPClient_MissingKeyIsConfigurationError(t *testing.T) {
	c := NewHTTPClient("http://unused", "", "gpt-test", zap.NewNop())
	_, err := c.Generate(context.Background(), "hola", DecodingParams{})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if errors.Is(err, domain.ErrAuthConfiguration) {
		t.Fatalf("missing key must not be reported as invalid key")
	}
}

func TestHTTPClient_SendsDecodingParams(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key-1" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "key-1", "gpt-test", zap.NewNop())
	text, err := c.Generate(context.Background(), "prompt", DecodingParams{
		Temperature:  Float32(0.3),
		JSONResponse: true,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != `{"ok":true}` {
		t.Fatalf("unexpected text %q", text)
	}
	if got["model"] != "gpt-test" {
		t.Fatalf("expected model in request, got %+v", got)
	}
	rf, ok := got["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Fatalf("expected json response format, got %+v", got["response_format"])
	}
	if _, ok := got["top_p"]; ok {
		t.Fatalf("expected unset top_p to be omitted")
	}
}

func TestHTTPClient_InvalidKeyIsAuthConfiguration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "bad", "gpt-test", zap.NewNop())
	_, err := c.Generate(context.Background(), "prompt", DecodingParams{})
	if !errors.Is(err, domain.ErrAuthConfiguration) {
		t.Fatalf("expected auth configuration error, got %v", err)
	}
}

func TestHTTPClient_ServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "key", "gpt-test", zap.NewNop())
	_, err := c.Generate(context.Background(), "prompt", DecodingParams{})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestHTTPClient_EmptyChoicesIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "key", "gpt-test", zap.NewNop())
	_, err := c.Generate(context.Background(), "prompt", DecodingParams{})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

package planner

import (
	"context"
	"errors"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  ", "{\"a\":1}"},
	} {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Fatalf("stripCodeFences(%q) got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassifyTransportError(t *testing.T) {
	if got := classifyTransportError(context.DeadlineExceeded); got != failureTimeout {
		t.Fatalf("deadline got %v, want timeout", got)
	}
	if got := classifyTransportError(errors.New("status code: 429 too many requests")); got != failureRateLimit {
		t.Fatalf("429 got %v, want rate limit", got)
	}
	if got := classifyTransportError(errors.New("status code: 500 internal")); got != failureServer {
		t.Fatalf("500 got %v, want server", got)
	}
	if got := classifyTransportError(errors.New("status code: 400 bad request")); got != failureClient {
		t.Fatalf("400 got %v, want client", got)
	}
	if got := classifyTransportError(errors.New("connection reset")); got != failureServer {
		t.Fatalf("unknown got %v, want server default", got)
	}
}

func TestNewAnthropicCallerFromEnvRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := NewAnthropicCallerFromEnv(); err == nil {
		t.Fatal("expected error without API key")
	}
}

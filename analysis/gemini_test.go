package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/lotsize/config"
)

func testClient(t *testing.T, h http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default().Analysis
	cfg.BaseURL = srv.URL
	cfg.APIKey = "test-key"
	cfg.Timeout = "2s"
	return NewClient(cfg, nil), &calls
}

func reply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
}

func TestClientAnalyze(t *testing.T) {
	var got generateRequest
	c, calls := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-3-pro-preview:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		reply(w, `{"summary":"Steady","strengths":["Cuts losses"],"weaknesses":["Overtrades"],"recommendation":"Trade less"}`)
	})

	res := c.Analyze(context.Background(), trades(3), 10000)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Result{
		Summary:        "Steady",
		Strengths:      []string{"Cuts losses"},
		Weaknesses:     []string{"Overtrades"},
		Recommendation: "Trade less",
	}, res)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "$10000 account")
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "OBJECT", got.GenerationConfig.ResponseSchema.Type)
	assert.ElementsMatch(t, []string{"summary", "strengths", "weaknesses", "recommendation"},
		got.GenerationConfig.ResponseSchema.Required)
}

func TestClientAnalyzeEmptyJournal(t *testing.T) {
	c, calls := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty journal")
	})

	assert.Equal(t, EmptyJournal(), c.Analyze(context.Background(), nil, 10000))
	assert.Zero(t, calls.Load())
}

func TestClientAnalyzeFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"no candidates", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}},
		{"empty text", func(w http.ResponseWriter, r *http.Request) {
			reply(w, "")
		}},
		{"text is not json", func(w http.ResponseWriter, r *http.Request) {
			reply(w, "You are doing great!")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testClient(t, tt.handler)
			assert.Equal(t, Fallback(), c.Analyze(context.Background(), trades(2), 10000))
		})
	}
}

func TestClientAnalyzeWithoutKey(t *testing.T) {
	c, calls := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, `{"summary":"x"}`)
	})
	c.apiKey = ""

	assert.Equal(t, Fallback(), c.Analyze(context.Background(), trades(1), 10000))
	assert.Zero(t, calls.Load())
}

func TestClientAnalyzeFillsMissingLists(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, `{"summary":"Thin","recommendation":"Log more"}`)
	})

	res := c.Analyze(context.Background(), trades(1), 10000)
	assert.Equal(t, "Thin", res.Summary)
	assert.NotNil(t, res.Strengths)
	assert.NotNil(t, res.Weaknesses)
}

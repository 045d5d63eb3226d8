package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "One quiz question.",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_text":  map[string]any{"type": "string"},
				"correct_answer": map[string]any{"type": "string"},
				"points":         map[string]any{"type": "integer", "minimum": 0},
				"difficulty":     map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			},
			"required": []any{"question_text", "correct_answer"},
		},
	}
}

const validQuestion = `{"question_text":"What does ATP store?","correct_answer":"energy","difficulty":"easy"}`

func userRequest(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}, MaxTokens: 256}
}

// capture is an httptest server that records request bodies and replies
// with a fixed status, headers and JSON body.
type capture struct {
	mu     sync.Mutex
	bodies []map[string]any
	paths  []string
}

func (c *capture) serve(t *testing.T, status int, header http.Header, reply any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		c.mu.Lock()
		c.bodies = append(c.bodies, body)
		c.paths = append(c.paths, r.URL.Path)
		c.mu.Unlock()

		for k, vs := range header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (c *capture) last(t *testing.T) map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.bodies)
	return c.bodies[len(c.bodies)-1]
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bodies)
}

package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html><head><title>Cells</title><style>body{color:red}</style></head>
<body>
<header>Site header</header>
<nav><a href="/">Home</a></nav>
<main><h1>The Cell</h1><p>The mitochondria is the <b>powerhouse</b> of the cell.</p></main>
<script>var tracking = true;</script>
<footer>Copyright</footer>
</body></html>`

func TestFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "The Cell The mitochondria is the powerhouse of the cell.", text)
	assert.NotContains(t, text, "tracking")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Site header")
}

func TestFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(WithUserAgent("test")).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

package forum

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const (
	testAuthorsJSON = `[{"id":1,"name":"Alice","role":"mod","place":"BKK","avatar_url":"a.png"}]`
	testPostsJSON   = `[{"id":10,"author_id":1,"title":"Hi","body":"Hello world","image_url":"p.png","created_at":"2024-01-05T14:30:00Z"}]`
)

// endpoint is a test server answering every request with a fixed status and body.
type endpoint struct {
	server *httptest.Server
	hits   atomic.Int32
}

func newEndpoint(t *testing.T, status int, body string) *endpoint {
	t.Helper()

	e := &endpoint{}
	e.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(e.server.Close)

	return e
}

func (e *endpoint) URL() string {
	return e.server.URL
}

func (e *endpoint) Hits() int {
	return int(e.hits.Load())
}

func newTestConfig(name, authorsURL, postsURL string) *Config {
	return &Config{
		Name:       name,
		Title:      "Test Forum",
		AuthorsURL: authorsURL,
		PostsURL:   postsURL,
		Settings: ConfigSettings{
			Timezone: "UTC",
		},
	}
}

func newTestFetcher() *HTTPFetcher {
	return NewHTTPFetcher(NewHTTPClient(), "Forum View Test")
}

func newTestFormatter() *DateFormatter {
	return NewDateFormatter(time.UTC)
}

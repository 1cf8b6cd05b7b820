//go:build integration

package itest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeAPI struct {
	mu    sync.Mutex
	reply string
	hits  int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits++
	reply := f.reply
	f.mu.Unlock()

	content, _ := json.Marshal(reply)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` +
		string(content) + `},"finish_reason":"stop"}]}`))
}

func (f *fakeAPI) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

// startFakeAPI returns the API and the env pointing the CLI at it.
func startFakeAPI(t *testing.T, reply string) (*fakeAPI, map[string]string) {
	t.Helper()
	api := &fakeAPI{reply: reply}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, map[string]string{
		"OPENAI_API_KEY":       "dummy",
		"OPENAI_BASE_URL":      srv.URL + "/v1",
		"OPENAI_ALLOWED_HOSTS": "127.0.0.1",
		"XDG_CONFIG_HOME":      t.TempDir(),
	}
}

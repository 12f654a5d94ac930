package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fivetwenty-io/capi-admin/internal/auth"
	"github.com/fivetwenty-io/capi-admin/internal/client"
	capihttp "github.com/fivetwenty-io/capi-admin/internal/http"
)

// fakePlatform serves /info, the token endpoint below /uaa, and whatever
// control-plane handlers a test registers.
type fakePlatform struct {
	server *httptest.Server
	mux    *http.ServeMux

	logins atomic.Int32

	mu       sync.Mutex
	requests []string
}

func newFakePlatform(t *testing.T) *fakePlatform {
	t.Helper()

	platform := &fakePlatform{mux: http.NewServeMux()}

	platform.mux.HandleFunc("GET /info", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, map[string]string{
			"authorization_endpoint": platform.server.URL + "/login",
			"token_endpoint":         platform.server.URL + "/uaa",
		})
	})

	platform.mux.HandleFunc("POST /uaa/oauth/token", func(writer http.ResponseWriter, _ *http.Request) {
		n := platform.logins.Add(1)

		writeJSON(writer, map[string]string{
			"token_type":   "bearer",
			"access_token": "token-" + strconv.Itoa(int(n)),
		})
	})

	platform.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/info" && request.URL.Path != "/uaa/oauth/token" {
			platform.mu.Lock()
			platform.requests = append(platform.requests, request.Method+" "+request.URL.RequestURI())
			platform.mu.Unlock()
		}

		platform.mux.ServeHTTP(writer, request)
	}))

	t.Cleanup(platform.server.Close)

	return platform
}

func (p *fakePlatform) handle(pattern string, handler http.HandlerFunc) {
	p.mux.HandleFunc(pattern, handler)
}

func (p *fakePlatform) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.requests...)
}

func (p *fakePlatform) client() *client.Client {
	transport := capihttp.NewClient()
	tokens := auth.NewPasswordTokenManager(transport, auth.Config{
		APIEndpoint: p.server.URL,
		Username:    "admin",
		Password:    "admin",
	})

	return client.New(transport, tokens, p.server.URL)
}

func writeJSON(writer http.ResponseWriter, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(body)
}

func records(names ...string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(names))

	for _, name := range names {
		out = append(out, map[string]interface{}{
			"metadata": map[string]string{"guid": name + "-guid"},
			"entity":   map[string]string{"name": name},
		})
	}

	return out
}

func names(t *testing.T, raw []json.RawMessage) []string {
	t.Helper()

	out := make([]string, 0, len(raw))

	for _, r := range raw {
		var record struct {
			Entity struct {
				Name string `json:"name"`
			} `json:"entity"`
		}

		if err := json.Unmarshal(r, &record); err != nil {
			t.Fatalf("decoding record: %v", err)
		}

		out = append(out, record.Entity.Name)
	}

	return out
}

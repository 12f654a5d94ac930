package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	capihttp "github.com/fivetwenty-io/capi-admin/internal/http"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request with bearer token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2/apps", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]string{"guid": "app-guid"})
		}))
		defer server.Close()

		client := capihttp.NewClient()

		resp, err := client.Do(context.Background(), &capihttp.Request{
			Method:    "GET",
			URL:       server.URL + "/v2/apps",
			BasicAuth: "Basic Y2Y6",
			Token:     "bearer test-token",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "OK", resp.Reason())

		var result map[string]string

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Equal(t, "app-guid", result["guid"])
	})

	t.Run("basic auth with form body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "Basic Y2Y6", request.Header.Get("Authorization"))
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			require.NoError(t, request.ParseForm())
			assert.Equal(t, "password", request.Form.Get("grant_type"))

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := capihttp.NewClient()

		resp, err := client.Do(context.Background(), &capihttp.Request{
			Method:      "POST",
			URL:         server.URL + "/oauth/token",
			BasicAuth:   "Basic Y2Y6",
			Body:        []byte("grant_type=password"),
			ContentType: "application/x-www-form-urlencoded",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("json body by default", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			body, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{"state":"STOPPED"}`, string(body))

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := capihttp.NewClient()

		resp, err := client.Do(context.Background(), &capihttp.Request{
			Method: "PUT",
			URL:    server.URL + "/v2/apps/1",
			Body:   []byte(`{"state":"STOPPED"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error status is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error":"invalid_token"}`))
		}))
		defer server.Close()

		client := capihttp.NewClient()

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL + "/v2/apps"})
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, "Unauthorized", resp.Reason())
		assert.JSONEq(t, `{"error":"invalid_token"}`, string(resp.Body))
	})

	t.Run("network error propagates", func(t *testing.T) {
		t.Parallel()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		addr := listener.Addr().String()
		require.NoError(t, listener.Close())

		client := capihttp.NewClient()

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: "http://" + addr + "/v2/apps"})
		require.Error(t, err)
		assert.Nil(t, resp)

		var opErr *net.OpError
		assert.True(t, errors.As(err, &opErr))
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "console/2.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := capihttp.NewClient(capihttp.WithUserAgent("console/2.0"))

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := capihttp.NewClient(capihttp.WithLogger(logger), capihttp.WithDebug(true))

		_, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL + "/v2/apps"})
		require.NoError(t, err)

		// retryablehttp also logs the attempt; only the transport's own entries are checked
		var msgs []string
		for _, entry := range logger.logs {
			msg, _ := entry["msg"].(string)
			if msg == "HTTP Request" || msg == "HTTP Response" {
				msgs = append(msgs, msg)
			}
		}

		assert.Equal(t, []string{"HTTP Request", "HTTP Response"}, msgs)
	})

	t.Run("timeout bounds the round trip", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(200 * time.Millisecond)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := capihttp.NewClient(capihttp.WithTimeout(20 * time.Millisecond))

		_, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.Error(t, err)
	})
	t.Run("custom http client keeps the timeout and is left unchanged", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(200 * time.Millisecond)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		custom := &http.Client{Transport: http.DefaultTransport}

		client := capihttp.NewClient(
			capihttp.WithTimeout(20*time.Millisecond),
			capihttp.WithHTTPClient(custom),
		)

		_, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.Error(t, err)
		assert.Zero(t, custom.Timeout)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()

	t.Run("retries GET on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := capihttp.NewClient(capihttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("returns last 5xx when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := capihttp.NewClient(capihttp.WithRetryConfig(2, 10*time.Millisecond, 20*time.Millisecond))

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("never retries side-effecting methods", func(t *testing.T) {
		t.Parallel()

		for _, method := range []string{"PUT", "DELETE", "POST"} {
			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts.Add(1)
				writer.WriteHeader(http.StatusServiceUnavailable)
			}))

			client := capihttp.NewClient(capihttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

			resp, err := client.Do(context.Background(), &capihttp.Request{Method: method, URL: server.URL})
			require.NoError(t, err, method)
			assert.Equal(t, 503, resp.StatusCode, method)
			assert.Equal(t, int32(1), attempts.Load(), method)

			server.Close()
		}
	})

	t.Run("no retries by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := capihttp.NewClient()

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := capihttp.NewClient(capihttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Do(context.Background(), &capihttp.Request{Method: "GET", URL: server.URL})
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})
}

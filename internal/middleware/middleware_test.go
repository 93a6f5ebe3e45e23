package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfiorentina/progetto-fitness/internal/logging"
	"github.com/myfiorentina/progetto-fitness/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.POST("/meals", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	return r
}

func serve(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	t.Run("assigns an id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})

	t.Run("keeps a caller's uuid", func(t *testing.T) {
		const id = "3f1c2a9e-8d4b-4c6a-9b1e-2f7d5e0a6c11"
		w := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {id}})
		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces ids that are not uuids", func(t *testing.T) {
		for _, bad := range []string{"abc-123", strings.Repeat("x", 4096), "id\nforged=1"} {
			w := serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {bad}})
			got := w.Header().Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := newEngine(RequestID(), RequestLogger(logger))
	const id = "0b6f4a52-6c1e-4f3a-8e2d-9a7c1b5d3e40"
	serve(r, http.MethodGet, "/ping", http.Header{RequestIDHeader: {id}})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, id, line["request_id"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ping", line["path"])
	assert.Equal(t, float64(200), line["status"])
	assert.Equal(t, "request completed", line["msg"])
}

func TestRecovery(t *testing.T) {
	r := newEngine(RequestID(), Recovery(logging.Discard()))

	w := serve(r, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	t.Run("allows any origin by default", func(t *testing.T) {
		r := newEngine(CORS([]string{"*"}))
		w := serve(r, http.MethodGet, "/ping", http.Header{"Origin": {"http://frontend.test"}})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricts to the configured origins", func(t *testing.T) {
		r := newEngine(CORS([]string{"http://localhost:5173"}))

		w := serve(r, http.MethodGet, "/ping", http.Header{"Origin": {"http://localhost:5173"}})
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

		w = serve(r, http.MethodGet, "/ping", http.Header{"Origin": {"http://evil.example"}})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("leaves same-origin requests alone", func(t *testing.T) {
		r := newEngine(CORS([]string{"*"}))
		// httptest requests target example.com.
		w := serve(r, http.MethodGet, "/ping", http.Header{"Origin": {"http://example.com"}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("answers preflight requests", func(t *testing.T) {
		r := newEngine(CORS([]string{"*"}))
		w := serve(r, http.MethodOptions, "/meals", http.Header{
			"Origin":                        {"http://frontend.test"},
			"Access-Control-Request-Method": {"POST"},
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	for name, rl := range map[string]*RateLimiter{
		"nil redis":  NewMealIngestionRateLimiter(nil, 10, logging.Discard()),
		"zero limit": NewMealIngestionRateLimiter(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0, logging.Discard()),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, rl.Enabled())
			r := newEngine(rl.Middleware())
			for i := 0; i < 5; i++ {
				assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/meals", nil).Code)
			}
		})
	}
}

func TestRateLimiter_FailsOpenWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewMealIngestionRateLimiter(client, 1, logging.Discard())
	r := newEngine(rl.Middleware())

	w := serve(r, http.MethodPost, "/meals", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiter_EnforcesLimit(t *testing.T) {
	client := testhelpers.SetupRedis(t)

	rl := NewMealIngestionRateLimiter(client, 2, logging.Discard())
	r := newEngine(rl.Middleware())

	first := serve(r, http.MethodPost, "/meals", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := serve(r, http.MethodPost, "/meals", nil)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := serve(r, http.MethodPost, "/meals", nil)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Contains(t, third.Body.String(), "rate limit exceeded")
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
}

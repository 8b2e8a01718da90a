package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		origins         []string
		method          string
		origin          string
		expectedStatus  int
		expectedHeaders map[string]string
	}{
		{
			name:           "preflight request",
			method:         http.MethodOptions,
			origin:         "https://example.com",
			expectedStatus: http.StatusNoContent,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
				"Access-Control-Allow-Headers": "Origin, Content-Length, Content-Type, Authorization",
			},
		},
		{
			name:            "regular GET request",
			method:          http.MethodGet,
			origin:          "https://example.com",
			expectedStatus:  http.StatusOK,
			expectedHeaders: map[string]string{"Access-Control-Allow-Origin": "*"},
		},
		{
			name:            "listed origin is echoed",
			origins:         []string{"https://studio.example.com"},
			method:          http.MethodGet,
			origin:          "https://studio.example.com",
			expectedStatus:  http.StatusOK,
			expectedHeaders: map[string]string{"Access-Control-Allow-Origin": "https://studio.example.com"},
		},
		{
			name:            "unlisted origin gets no allow header",
			origins:         []string{"https://studio.example.com"},
			method:          http.MethodGet,
			origin:          "https://evil.example.com",
			expectedStatus:  http.StatusOK,
			expectedHeaders: map[string]string{"Access-Control-Allow-Origin": ""},
		},
		{
			name:            "wildcard in list",
			origins:         []string{"https://studio.example.com", "*"},
			method:          http.MethodPost,
			expectedStatus:  http.StatusOK,
			expectedHeaders: map[string]string{"Access-Control-Allow-Origin": "*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.origins))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for header, expectedValue := range tt.expectedHeaders {
				assert.Equal(t, expectedValue, w.Header().Get(header), "Header: %s", header)
			}
		})
	}
}

func TestRequestSizeLimitWithSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	customLimit := int64(512 * 1024)

	tests := []struct {
		name           string
		bodySize       int
		chunked        bool
		expectedStatus int
	}{
		{name: "request under limit", bodySize: 256 * 1024, expectedStatus: http.StatusOK},
		{name: "request at limit", bodySize: 512 * 1024, expectedStatus: http.StatusOK},
		{name: "declared length over limit", bodySize: 1024 * 1024, expectedStatus: http.StatusRequestEntityTooLarge},
		{name: "streamed body over limit", bodySize: 1024 * 1024, chunked: true, expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestSizeLimitWithSize(customLimit))
			router.POST("/test", func(c *gin.Context) {
				body, err := io.ReadAll(c.Request.Body)
				if err != nil {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
					return
				}
				c.JSON(http.StatusOK, gin.H{"received": len(body)})
			})

			body := strings.Repeat("a", tt.bodySize)
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
			if tt.chunked {
				req.ContentLength = -1
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequestSizeLimit_IgnoresGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestSizeLimitWithSize(10))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", strings.NewReader(strings.Repeat("a", 100)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		requestCount      int
		requestsPerSecond float64
		burstSize         int
		expectSomeBlocked bool
		waitBetween       time.Duration
	}{
		{name: "requests under rate limit", requestCount: 3, requestsPerSecond: 10, burstSize: 5},
		{name: "burst requests", requestCount: 6, requestsPerSecond: 2, burstSize: 3, expectSomeBlocked: true},
		{name: "spaced requests", requestCount: 5, requestsPerSecond: 10, burstSize: 2, waitBetween: 150 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateLimiters := &sync.Map{}
			cleanupStop := make(chan struct{})
			defer close(cleanupStop)

			router := gin.New()
			router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, tt.requestsPerSecond, tt.burstSize))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			successCount, blockedCount := 0, 0
			for i := 0; i < tt.requestCount; i++ {
				if tt.waitBetween > 0 && i > 0 {
					time.Sleep(tt.waitBetween)
				}

				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.RemoteAddr = "127.0.0.1:12345"
				router.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			if tt.expectSomeBlocked {
				assert.Greater(t, blockedCount, 0, "Expected some requests to be blocked")
			} else {
				assert.Equal(t, 0, blockedCount, "Expected no requests to be blocked")
				assert.Equal(t, tt.requestCount, successCount, "Expected all requests to succeed")
			}
		})
	}
}

func TestPerClientRateLimit_DifferentClients(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)

	router := gin.New()
	router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &sync.Once{}, 2, 2))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		router.ServeHTTP(w, req)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSweepRateLimiters(t *testing.T) {
	rateLimiters := &sync.Map{}

	stale := newClientLimiter(1, 1)
	stale.lastSeen.Store(time.Now().Add(-2 * time.Hour).UnixNano())
	rateLimiters.Store("stale-client", stale)
	rateLimiters.Store("fresh-client", newClientLimiter(1, 1))

	sweepRateLimiters(rateLimiters, time.Now())

	_, ok := rateLimiters.Load("stale-client")
	assert.False(t, ok)
	_, ok = rateLimiters.Load("fresh-client")
	assert.True(t, ok)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Contains(t, buf.String(), "path=/test")
	assert.Contains(t, buf.String(), "status=418")
}

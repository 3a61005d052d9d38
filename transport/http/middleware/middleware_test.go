package middleware_test

import (
	"agenda/config"
	otelMocks "agenda/infras/otel/mocks"
	"agenda/shared/cache"
	"agenda/shared/constant"
	"agenda/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newAppMiddleware(t *testing.T, cfg *config.Config) (middleware.AppMiddleware, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cache.NewRedisCache(client, otelMocks.NewOtel())), mr
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	app, _ := newAppMiddleware(t, cfg)
	handler := app.RateLimit()(ok)

	request := func(ip string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		r.Header.Set(constant.RequestHeaderForwardedFor, ip+", 10.0.0.1")

		return r
	}

	first := serve(handler, request("203.0.113.7"))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get(constant.RequestHeaderRateLimit))
	assert.Equal(t, "1", first.Header().Get(constant.RequestHeaderRateLimitRemaining))

	assert.Equal(t, http.StatusOK, serve(handler, request("203.0.113.7")).Code)

	limited := serve(handler, request("203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get(constant.RequestHeaderRateLimitRemaining))

	// another client has its own window
	assert.Equal(t, http.StatusOK, serve(handler, request("198.51.100.2")).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	app, _ := newAppMiddleware(t, &config.Config{})

	recorder := serve(app.RateLimit()(ok), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get(constant.RequestHeaderRateLimit))
}

func TestRateLimitFailsOpen(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 1
	cfg.App.RateLimiter.WindowSeconds = 60

	app, mr := newAppMiddleware(t, cfg)
	mr.Close()

	recorder := serve(app.RateLimit()(ok), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequestID(t *testing.T) {
	app, _ := newAppMiddleware(t, &config.Config{})

	var seen string

	handler := app.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)
	}))

	given := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(constant.RequestHeaderRequestID, given)

	recorder := serve(handler, r)
	assert.Equal(t, given, seen)
	assert.Equal(t, given, recorder.Header().Get(constant.RequestHeaderRequestID))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(constant.RequestHeaderRequestID, "not-a-uuid")

	recorder = serve(handler, r)
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", seen)
	assert.Equal(t, seen, recorder.Header().Get(constant.RequestHeaderRequestID))
}

func TestTracingKeepsStatus(t *testing.T) {
	app, _ := newAppMiddleware(t, &config.Config{})

	handler := app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	assert.Equal(t, http.StatusTeapot, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://admin.example.com"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	app, _ := newAppMiddleware(t, cfg)

	r := httptest.NewRequest(http.MethodGet, "/v1/doctors", nil)
	r.Header.Set("Origin", "https://admin.example.com")

	recorder := serve(app.CORS()(ok), r)

	assert.Equal(t, "https://admin.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		configured string
		header     string
		want       int
	}{
		{name: "matching key", configured: "s3cret", header: "s3cret", want: http.StatusOK},
		{name: "missing key", configured: "s3cret", want: http.StatusUnauthorized},
		{name: "wrong key", configured: "s3cret", header: "guess", want: http.StatusUnauthorized},
		{name: "no key configured", env: constant.ServerEnvProduction, header: "anything", want: http.StatusUnauthorized},
		{name: "no key configured in development", env: constant.ServerEnvDevelopment, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Env = tt.env
			cfg.App.APIKey = tt.configured

			r := httptest.NewRequest(http.MethodPost, "/v1/schedules/1/book", nil)
			if tt.header != "" {
				r.Header.Set(constant.RequestHeaderAPIKey, tt.header)
			}

			recorder := serve(middleware.NewAuthMiddleware(otelMocks.NewOtel(), cfg).APIKey(ok), r)

			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

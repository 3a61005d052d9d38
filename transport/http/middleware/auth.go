package middleware

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/shared/constant"
	"agenda/transport/http/response"
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Auth guards the administrative write routes.
type Auth interface {
	APIKey(next http.Handler) http.Handler
}

type authImpl struct {
	otel otel.Otel
	cfg  *config.Config
}

func NewAuthMiddleware(otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		otel: otel,
		cfg:  cfg,
	}
}

// APIKey requires the X-API-Key header to match APP_API_KEY. Without a
// configured key every request is refused, except in development.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		expected := m.cfg.App.APIKey
		if expected == "" && m.cfg.Server.Env == constant.ServerEnvDevelopment {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			scope.SetAttribute("reason", "invalid_api_key")
			scope.End()
			log.Warn().Str("path", request.URL.Path).Msg("rejected request with invalid API key")

			response.WithInvalidAPIKey(writer)

			return
		}

		scope.SetAttribute("http.source", "service")
		scope.End()
		next.ServeHTTP(writer, request)
	})
}

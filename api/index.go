package handler

import (
	"agenda/config"
	"agenda/di"
	"agenda/shared/logger"
	"net/http"
	"sync"
)

var (
	server     http.Handler
	serverOnce sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	serverOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}

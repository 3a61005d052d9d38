package di

import (
	"agenda/internal/handlers/event"
	"agenda/transport/http"
)

// App is everything cmd/app runs: the HTTP server and the schedule event consumer.
type App struct {
	HTTP   *http.HTTP
	Events event.Handler
}

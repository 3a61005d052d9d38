package otel_test

import (
	"agenda/config"
	"agenda/infras/otel"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "agenda-test"

	tracer := otel.New(cfg)

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Reserve")
	require.NotNil(t, ctx)

	assert.NotPanics(t, func() {
		scope.SetAttribute("schedule.id", int64(42))
		scope.SetAttributes(map[string]any{"doctor.id": 7, "status": "booked", "ok": true})
		scope.AddEvent("reserved")
		scope.TraceIfError(nil)
		scope.TraceError(nil)
		scope.TraceError(errors.New("slot taken"))
		scope.End()
	})

	require.NoError(t, tracer.Shutdown(context.Background()))
}

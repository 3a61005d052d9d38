package main

import (
	"agenda/config"
	"agenda/di"
	"agenda/shared/logger"
	"context"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := di.InitializeApp()
	app.Events.Start(ctx)
	app.HTTP.Serve()
}

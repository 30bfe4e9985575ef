package main

import (
	"context"
	"os/signal"
	"syscall"

	"eduledger/internal/app"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx); err != nil {
		logger.Fatal("worker failed", zap.Error(err))
	}
}

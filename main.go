package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"example.com/shopping-list/config"
	"example.com/shopping-list/internal/app"
)

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	cfg := config.Load()
	cfg.Print()

	shoppingList := app.New(sigCtx, cfg)

	err := shoppingList.Run(sigCtx)
	shoppingList.Close()
	if err != nil {
		slog.Error("application stopped unexpectedly", "err", err)
		os.Exit(1)
	}
}

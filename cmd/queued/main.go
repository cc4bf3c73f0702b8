package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/williamma12/ray/internal/queuecli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := queuecli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

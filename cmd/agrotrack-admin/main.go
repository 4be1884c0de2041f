package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cli.DefaultDeps()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

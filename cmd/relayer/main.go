package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cosmos/ibc-go/relayer/cmd/relayer/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx, cmd.NewRootCmd())
	stop()
	if err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/serene/internal/cli"
	"github.com/idilsaglam/serene/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		ui.Fail(err.Error())
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}

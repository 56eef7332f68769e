package main

import (
	"context"
	"os"
	"os/signal"

	"mergecheck.dev/mergecheck/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewRootCmd(version, commit, date))
	stop()
	os.Exit(code)
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pfeifer.dev/drived/cli"
	"pfeifer.dev/drived/params"
	"pfeifer.dev/drived/settings"
	"pfeifer.dev/drived/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, run := cli.Handle(ctx)
	if !run {
		return
	}

	params.EnsureParamDirectories()
	settings.Settings.LoadWithRetries(3)
	logFile := settings.Settings.ConfigureLogging()
	defer func() { utils.Loge(logFile.Close()) }()

	slog.Info("starting drived", "routeFile", opts.RouteFile, "params", params.ParamsPath)
	utils.Check(runDaemon(ctx, opts, settings.Settings))
	slog.Info("drived stopped")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/rentafleet/fleetapi-go/internal/client/cli"
	"github.com/rentafleet/fleetapi-go/internal/client/config"
	"github.com/rentafleet/fleetapi-go/internal/logging"
)

func main() {

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/imagenstudio/internal/buildinfo"
	"github.com/dmitrijs2005/imagenstudio/internal/client/cli"
	"github.com/dmitrijs2005/imagenstudio/internal/client/config"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, int(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx, "/")

}

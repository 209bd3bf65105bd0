package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/docwatch/internal/buildinfo"
	"github.com/dmitrijs2005/docwatch/internal/client/cli"
	"github.com/dmitrijs2005/docwatch/internal/client/config"
	"github.com/dmitrijs2005/docwatch/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())

}

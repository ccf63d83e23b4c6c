package main

import (
	"context"
	"log"
	"os"

	"github.com/taskbuddy/taskbuddy/internal/buildinfo"
	"github.com/taskbuddy/taskbuddy/internal/cli"
	"github.com/taskbuddy/taskbuddy/internal/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

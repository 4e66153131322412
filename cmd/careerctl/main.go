package main

import (
	"context"
	"log"

	"github.com/careerrise/careerctl/internal/cli"
	"github.com/careerrise/careerctl/internal/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/daastan/internal/client/cli"
	"github.com/dmitrijs2005/daastan/internal/client/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}

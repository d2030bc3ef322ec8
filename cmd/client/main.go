package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"

	"contactbook/internal/client"
	"contactbook/internal/client/cli"
)

func main() {
	cfg, err := client.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	api := client.NewAPI(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})
	session, err := client.NewSession(api, client.NewTokenFile(cfg.TokenFile))
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.NewApp(session, os.Stdin, os.Stdout).Run(ctx)
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/go-gin-backoffice/internal/app/backoffice"
)

func main() {
	cfg, err := backoffice.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	if err := backoffice.Run(ctx, cfg); err != nil {
		log.Printf("back office client failed: %v", err)
		stop()
		os.Exit(1)
	}
}

package main

import (
	"log"

	"ticketescrow/config"
	"ticketescrow/internal/app"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("App error: %s", err)
	}
}

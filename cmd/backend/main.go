package main

import (
	"context"
	"log"

	"voucher-backend/internal/pkg"
)

func main() {
	log.Println("App start")

	app, err := pkg.NewApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.RunApp()
	log.Println("App terminated")
}

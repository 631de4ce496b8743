// Package main implements the entry point for the tours API server,
// which serves a tour catalog with filterable listings, aggregate
// reporting, and token-based account management.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

package main

import (
	"net/http"
	"os"

	"gameroom-signaling/internal/config"
	"gameroom-signaling/internal/logging"
	"gameroom-signaling/internal/server"
	"gameroom-signaling/internal/signaling"
)

func main() {
	logging.Init()
	cfg := config.Load()

	// The registry is constructed once here and owned by the hub; all
	// room state lives in process memory and vanishes on restart.
	registry := signaling.NewRegistry()
	hub := signaling.NewHub(registry)

	// Run the hub's event loop in its own goroutine. Every inbound event
	// is processed there to completion, one at a time.
	go hub.Run()

	mux := server.NewMux(hub, cfg)

	logging.Infof("signaling server listening on %s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), mux); err != nil {
		logging.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gameroom-signaling/internal/config"
	"gameroom-signaling/internal/logging"
	"gameroom-signaling/internal/signaling"
)

// Configure the websocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  64 * 1024, // 64 KB
	WriteBufferSize: 64 * 1024, // 64 KB

	// Any origin may connect; the relay carries no secrets and
	// authentication is out of scope.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs returns an http.HandlerFunc that handles websocket requests.
// It takes the hub as a dependency.
func ServeWs(hub *signaling.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warnf("failed to upgrade connection: %v", err)
			return
		}

		// Assign the connection its identity. Every relay targeting this
		// peer addresses it by this id.
		client := &signaling.Client{
			ID:   uuid.NewString(),
			Hub:  hub,
			Conn: conn,
			Send: make(chan *signaling.Message, 256),
		}

		client.Hub.Register <- client

		// Start the client's read and write pumps in separate goroutines.
		// These methods will handle the client's lifecycle.
		go client.WritePump()
		go client.ReadPump()
	}
}

// ServeHealth reports liveness and the active room count.
func ServeHealth(hub *signaling.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok - %d active rooms\n", hub.RoomCount())
	}
}

// ServeICE hands out the ICE server list clients need to build their peer
// connections. Fetched once before dialing /ws.
func ServeICE(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cfg.ICEServers()); err != nil {
			logging.Warnf("failed to write ICE config: %v", err)
		}
	}
}

// WithCORS allows any origin for the plain HTTP endpoints (GET/POST). The
// websocket endpoint is covered by the upgrader's CheckOrigin instead.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewMux wires all routes onto a fresh ServeMux.
func NewMux(hub *signaling.Hub, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ServeWs(hub))
	mux.Handle("/health", WithCORS(ServeHealth(hub)))
	mux.Handle("/ice", WithCORS(ServeICE(cfg)))
	return mux
}

// Package config holds the server configuration, assembled from environment
// variables with hardcoded fallbacks.
package config

import (
	"fmt"
	"os"

	"github.com/pion/webrtc/v4"
)

// Default configuration values
const (
	DefaultPort = "3000"
	DefaultSTUN = "stun:stun.l.google.com:19302"
)

// Config holds application configuration.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string

	// ICE servers handed out to clients before they dial /ws.
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// Load reads configuration from the environment, falling back to defaults.
// TURN is optional; when TURN_SERVER is unset the relay hands out STUN only.
func Load() *Config {
	return &Config{
		Port:       envOr("PORT", DefaultPort),
		STUNServer: envOr("STUN_SERVER", DefaultSTUN),
		TURNServer: os.Getenv("TURN_SERVER"),
		TURNUser:   os.Getenv("TURN_USERNAME"),
		TURNPass:   os.Getenv("TURN_PASSWORD"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// ICEServers returns the ICE server list clients should use when building
// their peer connections.
func (c *Config) ICEServers() []webrtc.ICEServer {
	servers := []webrtc.ICEServer{
		{URLs: []string{c.STUNServer}},
	}
	if c.TURNServer != "" {
		servers = append(servers, webrtc.ICEServer{
			URLs:       []string{c.TURNServer},
			Username:   c.TURNUser,
			Credential: c.TURNPass,
		})
	}
	return servers
}

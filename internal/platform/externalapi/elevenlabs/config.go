// Package elevenlabs provides a client for the ElevenLabs text-to-speech API.
package elevenlabs

import (
	"os"
	"time"
)

const (
	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultVoiceID = "Rachel"
	DefaultModelID = "eleven_multilingual_v2"
)

// Config holds configuration for the ElevenLabs API client.
type Config struct {
	APIKey  string        // API key sent as xi-api-key
	VoiceID string        // voice used for every request
	BaseURL string        // Base URL for the API (e.g., "https://api.elevenlabs.io")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads ElevenLabs configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("ELEVEN_LABS_API_KEY"),
		VoiceID: os.Getenv("ELEVEN_LABS_VOICE_ID"),
		BaseURL: os.Getenv("ELEVEN_LABS_BASE_URL"),
		Timeout: 60 * time.Second,
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = DefaultVoiceID
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

package gemini

import (
	"net/http"
	"time"
)

// Config holds Gemini client settings. Audio inference can take minutes, so
// the timeout defaults generously; it bounds the whole upload+poll+generate
// sequence.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	Temperature  float32
	Timeout      time.Duration
	PollInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Minute
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	return c
}

func newHTTPClient() *http.Client {
	// No per-request timeout here; the context deadline set in Extract
	// governs the whole call sequence.
	return &http.Client{}
}

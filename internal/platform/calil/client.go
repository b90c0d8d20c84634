// Package calil talks to the Calil public library API: the nationwide library
// list and the asynchronous holding check job.
package calil

import (
	"time"

	"bookfinder/internal/platform/upstream"
)

const (
	defaultBaseURL      = "https://api.calil.jp"
	defaultPollInterval = 2 * time.Second

	// libraryListMaxBytes bounds the single library list download.
	libraryListMaxBytes = 16 << 20
)

type Config struct {
	AppKey  string
	BaseURL string
	// PollInterval is the fixed wait between check rounds.
	PollInterval time.Duration
	// MaxWait bounds one whole check job. Zero means no bound beyond the caller's context.
	MaxWait time.Duration
}

type Client struct {
	http         *upstream.Client
	appKey       string
	baseURL      string
	pollInterval time.Duration
	maxWait      time.Duration
}

func NewClient(httpClient *upstream.Client, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Client{
		http:         httpClient,
		appKey:       cfg.AppKey,
		baseURL:      baseURL,
		pollInterval: interval,
		maxWait:      cfg.MaxWait,
	}
}

// Package remote submits finalized sessions to an HTTP endpoint that grants
// rewards for them
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ayoisaiah/focusring/timer"
)

// maxErrorBody bounds how much of an error response is kept for the message.
const maxErrorBody = 512

// Config locates the reward service.
type Config struct {
	URL     string        `env:"FOCUS_UPLOAD_URL"`
	Token   string        `env:"FOCUS_UPLOAD_TOKEN"`
	Timeout time.Duration `env:"FOCUS_UPLOAD_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// LoadConfigFromEnv reads the uploader configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config

	err := env.Parse(&cfg)
	if err != nil {
		return Config{}, errParseEnv.Wrap(err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return cfg, nil
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for uploads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client is a timer.Submitter that posts sessions to the reward service.
type Client struct {
	http *http.Client
	cfg  Config
}

// New returns a client for the endpoint in cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if !cfg.Enabled() {
		return nil, errNoEndpoint
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SubmitSession posts sess as JSON and returns the reward granted for it.
func (c *Client) SubmitSession(
	ctx context.Context,
	sess timer.FinalizedSession,
) (timer.Reward, error) {
	body, err := json.Marshal(sess)
	if err != nil {
		return timer.Reward{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.URL,
		bytes.NewReader(body),
	)
	if err != nil {
		return timer.Reward{}, errRequest.Wrap(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return timer.Reward{}, errRequest.Wrap(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return timer.Reward{}, errUnexpectedStatus.Fmt(
			resp.StatusCode,
			bytes.TrimSpace(msg),
		)
	}

	var reward timer.Reward

	err = json.NewDecoder(resp.Body).Decode(&reward)
	if err != nil && !errors.Is(err, io.EOF) {
		return timer.Reward{}, errDecodeResponse.Wrap(err)
	}

	return reward, nil
}

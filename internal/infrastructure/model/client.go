// Package model wraps the pretrained image classifier served by the
// inference sidecar. The model itself is an opaque black box: a preprocessed
// tensor goes in, a probability vector over the fixed category set comes out.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoscan/ewaste-api/internal/core/domain"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
)

const defaultRequestTimeout = 30 * time.Second

// Config captures the settings for reaching the inference endpoint.
type Config struct {
	// URL is the base address of the model server, e.g. http://model:8501.
	URL     string
	Timeout time.Duration
}

// metadata describes the served model.
type metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

type predictRequest struct {
	Image []float32 `json:"image"`
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// Client is the inference adapter. It is constructed once at process start;
// after that it holds only read-only state and is safe for concurrent use.
// When the startup probe fails the client stays permanently degraded for the
// process lifetime: Classify returns ErrModelUnavailable and everything else
// in the service keeps working.
type Client struct {
	baseURL    string
	http       *http.Client
	categories []string
	available  bool
	log        zerolog.Logger
}

// New builds the inference client and probes the model server's metadata.
// A failed probe is logged and leaves the client degraded rather than
// crashing startup.
func New(ctx context.Context, cfg Config, categories []string, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	c := &Client{
		baseURL:    cfg.URL,
		http:       &http.Client{Timeout: timeout},
		categories: categories,
		log:        log,
	}

	if err := c.probe(ctx); err != nil {
		log.Error().Err(err).Str("url", cfg.URL).
			Msg("model failed to load, classification disabled for this process")
		return c
	}

	c.available = true
	log.Info().Str("url", cfg.URL).Int("categories", len(categories)).Msg("model loaded")
	return c
}

// Available reports whether the startup probe succeeded.
func (c *Client) Available() bool {
	return c.available
}

// Classify runs the fixed preprocessing pipeline and one forward pass, then
// resolves the argmax index against the category set.
func (c *Client) Classify(ctx context.Context, image []byte) (ports.Prediction, error) {
	if !c.available {
		return ports.Prediction{}, domain.ErrModelUnavailable
	}

	tensor, err := preprocess(image)
	if err != nil {
		return ports.Prediction{}, err
	}

	probs, err := c.predict(ctx, tensor)
	if err != nil {
		return ports.Prediction{}, fmt.Errorf("model predict: %w", err)
	}
	if len(probs) != len(c.categories) {
		return ports.Prediction{}, fmt.Errorf("model predict: got %d probabilities, want %d", len(probs), len(c.categories))
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	return ports.Prediction{
		Category:   c.categories[best],
		Confidence: domain.ClampConfidence(probs[best] * 100),
	}, nil
}

func (c *Client) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/metadata", nil)
	if err != nil {
		return fmt.Errorf("model probe: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("model probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model probe: unexpected status %d", resp.StatusCode)
	}

	var meta metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return fmt.Errorf("model probe: decode metadata: %w", err)
	}
	if len(meta.Classes) != len(c.categories) {
		return fmt.Errorf("model probe: model serves %d classes, service expects %d", len(meta.Classes), len(c.categories))
	}

	return nil
}

func (c *Client) predict(ctx context.Context, tensor []float32) ([]float64, error) {
	body, err := json.Marshal(predictRequest{Image: tensor})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Probabilities, nil
}

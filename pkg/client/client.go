// Package client fetches chart calculations from the jyotish calculation service.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chrissnell/jyotish/internal/log"
	"github.com/chrissnell/jyotish/pkg/chart"
	"github.com/chrissnell/jyotish/pkg/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Client issues calculate requests. It makes exactly one attempt per call.
type Client struct {
	client *resty.Client
	path   string
	logger *zap.SugaredLogger
}

// New creates a Client for the configured service endpoint
func New(cfg config.ServiceData, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = log.GetSugaredLogger()
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = config.DefaultEndpoint
	}
	path := cfg.Path
	if path == "" {
		path = config.DefaultPath
	}

	// resty warnings and, at debug level, its request/response dumps go through zap
	rc := resty.New().
		SetLogger(logger).
		SetDebug(logger.Desugar().Core().Enabled(zapcore.DebugLevel)).
		SetBaseURL(endpoint).
		SetRetryCount(0).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "jyotish-client",
		})
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		client: rc,
		path:   path,
		logger: logger,
	}
}

// Fetch requests a chart for params and returns the response re-serialized as indented
// JSON text. Any failure is returned as a *chart.FetchError and no text is returned.
func (c *Client) Fetch(ctx context.Context, params chart.Params) (string, error) {
	requestID := uuid.NewString()
	target := c.client.BaseURL + c.path

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetQueryParamsFromValues(params.Values()).
		Get(c.path)

	entry := log.HTTPLogEntry{
		RequestID: requestID,
		Method:    http.MethodGet,
		URL:       target,
		Duration:  time.Since(start),
	}

	if err != nil {
		entry.Err = err
		log.LogHTTPRequest(c.logger, entry)
		return "", &chart.FetchError{URL: target, Err: err}
	}

	entry.Status = resp.StatusCode()
	entry.Size = len(resp.Body())

	if !resp.IsSuccess() {
		entry.Err = fmt.Errorf("unexpected status %s", resp.Status())
		log.LogHTTPRequest(c.logger, entry)
		return "", &chart.FetchError{URL: target, StatusCode: resp.StatusCode(), Err: entry.Err}
	}

	pretty, err := chart.Indent(resp.Body())
	if err != nil {
		entry.Err = fmt.Errorf("malformed response body: %w", err)
		log.LogHTTPRequest(c.logger, entry)
		return "", &chart.FetchError{URL: target, StatusCode: resp.StatusCode(), Err: entry.Err}
	}

	log.LogHTTPRequest(c.logger, entry)
	return string(pretty), nil
}

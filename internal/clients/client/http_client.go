package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/observability/metrics"
	"github.com/rs/zerolog/log"
)

type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	Timeout time.Duration
	// Path is appended to the base URL and may carry a query string.
	Path string
	// TemplatePath is the metrics label, free of request specific values.
	TemplatePath string
	Headers      map[string]string
}

// StatusError is returned for non 2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("rate limit exceeded: %s", e.Body)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// Retriable reports whether the request may succeed when repeated.
func (e *StatusError) Retriable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

const maxErrorBodyLen = 512

func sendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := client.GetBaseURL() + opts.Path
	log.Ctx(ctx).Trace().Str("method", method).Str("url", url).Msg("sending http request")

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", opts.TemplatePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result R
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", opts.TemplatePath, err)
	}

	return &result, nil
}

// SendRequest performs a JSON request and decodes the response into R,
// recording the call duration under opts.TemplatePath.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)

	result, err := sendRequest[I, R](ctx, client, method, opts, input)

	statusCode := http.StatusOK
	if err != nil {
		statusCode = 0
		if statusErr, ok := err.(*StatusError); ok {
			statusCode = statusErr.StatusCode
		}
	}
	timer(statusCode)

	return result, err
}

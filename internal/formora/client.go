// Package formora is a client for the Formora submissions endpoint.
package formora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"formora/internal/config"
	"formora/internal/model"
)

// ErrAPIUnavailable wraps every failure to obtain a usable response:
// transport errors, non-2xx statuses and undecodable bodies.
var ErrAPIUnavailable = errors.New("failed to fetch data from Formora API")

// TokenParam is the query parameter carrying the API token.
// Its value must never reach logs or traces.
const TokenParam = "apiToken"

// Client fetches flat submission records from Formora.
type Client interface {
	// FetchSubmissions returns all records visible to apiToken. A templateID of
	// zero means no template filter.
	FetchSubmissions(ctx context.Context, apiToken string, templateID int64) ([]model.Submission, error)
}

// HTTPClient is the net/http implementation of Client.
// It is safe for concurrent use.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewClient builds a client for cfg.BaseURL with an otelhttp-instrumented transport.
func NewClient(cfg config.FormoraConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("formora base url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse formora base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("formora base url must be http or https, got %q", u.Scheme)
	}

	return &HTTPClient{
		baseURL: u,
		http: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// FetchSubmissions issues GET <base>?apiToken=...[&templateId=...].
func (c *HTTPClient) FetchSubmissions(ctx context.Context, apiToken string, templateID int64) ([]model.Submission, error) {
	u := *c.baseURL
	q := u.Query()
	q.Set(TokenParam, apiToken)
	if templateID != 0 {
		q.Set("templateId", strconv.FormatInt(templateID, 10))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL including the token; report only the cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrAPIUnavailable, resp.Status)
	}

	var out []model.Submission
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrAPIUnavailable, err)
	}
	return out, nil
}

// customer.io Track API client for customer profile deletion
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/cioprune/internal/shared"
)

// Track API hosts by region.
const (
	USBaseURL = "https://track.customer.io"
	EUBaseURL = "https://track-eu.customer.io"
)

// CustomerIO implements [Deleter] against the customer.io Track API.
type CustomerIO struct {
	baseURL    string
	siteID     string
	apiKey     string
	httpClient *http.Client
}

// CustomerIOOpts contains configuration options for creating a CustomerIO client.
type CustomerIOOpts struct {
	Credentials *shared.Credentials
	Region      string // "us" (default) or "eu"
	BaseURL     string // overrides Region when set, used in tests
	HTTPClient  *http.Client
}

// NewCustomerIO creates a Track API client for the given credentials.
func NewCustomerIO(opts CustomerIOOpts) (*CustomerIO, error) {
	if opts.Credentials == nil || opts.Credentials.SiteID == "" || opts.Credentials.APIKey == "" {
		return nil, fmt.Errorf("%w: customer.io site ID and API key are required", shared.ErrMissingCredentials)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		switch strings.ToLower(opts.Region) {
		case "", "us":
			baseURL = USBaseURL
		case "eu":
			baseURL = EUBaseURL
		default:
			return nil, fmt.Errorf("%w: unknown region %q (must be us or eu)", shared.ErrInvalidConfig, opts.Region)
		}
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &CustomerIO{
		baseURL:    baseURL,
		siteID:     opts.Credentials.SiteID,
		apiKey:     opts.Credentials.APIKey,
		httpClient: client,
	}, nil
}

// Delete removes the customer profile for the given identifier.
//
// Issues DELETE /api/v1/customers/{identifier}. The Track API answers 200 for
// deletes of existing and unknown profiles alike; anything outside 2xx is
// surfaced as an error carrying the status and a snippet of the body.
func (c *CustomerIO) Delete(ctx context.Context, identifier string) error {
	fullURL := fmt.Sprintf("%s/api/v1/customers/%s", c.baseURL, url.PathEscape(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.siteID, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, bodySnippet(resp.Body))
	}

	// Drain so the connection can be reused across the run.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// bodySnippet reads a short prefix of an error response body for reporting.
func bodySnippet(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 256))
	if err != nil || len(body) == 0 {
		return "<empty body>"
	}
	return strings.TrimSpace(string(body))
}

package gbif

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"namecorrector/domain/taxon"
	"namecorrector/internal/errors"
)

const serviceName = "gbif"

// StatusError is returned when the service answers with a non-2xx status
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gbif http %d", e.Code)
	}
	return fmt.Sprintf("gbif http %d: %s", e.Code, e.Body)
}

// StatusCode returns the HTTP status of the failed response
func (e *StatusError) StatusCode() int {
	return e.Code
}

// Client calls the GBIF species-match endpoint, one request per name
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a species-match client
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}, nil
}

// WithHTTPClient replaces the underlying http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// MatchURL builds the request URL for a name
func (c *Client) MatchURL(name string) string {
	params := url.Values{}
	params.Set("name", name)
	if c.config.Strict {
		params.Set("strict", "true")
	}
	if c.config.Kingdom != "" {
		params.Set("kingdom", c.config.Kingdom)
	}
	return strings.TrimRight(c.config.BaseURL, "/") + "/species/match?" + params.Encode()
}

// Match issues a single GET for name. No retries are attempted.
func (c *Client) Match(ctx context.Context, name string) (*taxon.MatchResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.MatchURL(name), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.ExternalServiceError(serviceName, err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError(serviceName, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.ExternalServiceError(serviceName, &StatusError{
			Code: resp.StatusCode,
			Body: truncate(strings.TrimSpace(string(respRaw)), 200),
		})
	}

	var decoded taxon.MatchResult
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return nil, errors.ExternalServiceError(serviceName, fmt.Errorf("unmarshal response: %w", err))
	}
	return &decoded, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…(" + strconv.Itoa(len(s)-n) + " more bytes)"
}

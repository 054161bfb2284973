package matcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// Client reads the remote mat catalog.
type Client struct {
	BaseURL string
	Path    string
	HTTP    *http.Client
}

// NewClient returns a client for the catalog served at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Path:    DefaultCatalogPath,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Query builds the query string for f. Zero fields are left out.
func Query(f domain.MatFilter) url.Values {
	q := url.Values{}
	if f.RequiredSize != "" {
		q.Set(paramRequiredSize, string(f.RequiredSize))
	}
	if f.Category != "" {
		q.Set(paramCategory, string(f.Category))
	}
	if f.Brand != "" {
		q.Set(paramBrand, string(f.Brand))
	}
	if f.ExcludeSite != "" {
		q.Set(paramExcludeSite, f.ExcludeSite)
	}
	return q
}

// Fetch requests the catalog narrowed by f. A non-2xx response is an error;
// there is no fallback catalog.
func (c *Client) Fetch(ctx context.Context, f domain.MatFilter) (*domain.MatCatalog, error) {
	u := c.BaseURL + c.Path
	if q := Query(f).Encode(); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: "+ErrMsgBadStatus, ErrFetchFailed, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var catalog domain.MatCatalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("%w: failed to decode catalog: %w", ErrFetchFailed, err)
	}
	return &catalog, nil
}

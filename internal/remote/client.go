package remote

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

const queryDateLayout = "2006-01-02"

// baseClient carries what every upstream client shares: the pooled HTTP
// client, the service base URL and a logger tagged with the upstream name.
type baseClient struct {
	http    *http.Client
	baseURL string
	name    string
	logg    *logger.Logger
}

func newBaseClient(baseURL, name string, timeout time.Duration, logg *logger.Logger) baseClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return baseClient{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		logg:    logg,
	}
}

// getJSON fetches path and returns the raw body. Any transport error or
// non-2xx status is logged and reported as not-ok; callers degrade to empty.
func (c *baseClient) getJSON(ctx context.Context, path string, query url.Values) ([]byte, bool) {
	if c.baseURL == "" {
		return nil, false
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.warn(ctx, path, "building upstream request failed", err)
		return nil, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(ctx, path, "upstream request failed", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.warn(ctx, path, "upstream returned non-success status", nil)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.warn(ctx, path, "reading upstream body failed", err)
		return nil, false
	}
	return body, true
}

func (c *baseClient) warn(ctx context.Context, path, msg string, err error) {
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithUpstream(ctx, c.name)
	ctx = c.logg.WithField(ctx, "path", path)
	if err != nil {
		ctx = c.logg.WithField(ctx, "error", err.Error())
	}
	c.logg.Warn(ctx, msg)
}

func (c *baseClient) warnDecode(ctx context.Context, path string, err error) {
	c.warn(ctx, path, "unexpected upstream response format", err)
}

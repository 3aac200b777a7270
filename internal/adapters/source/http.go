package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/okian/peloton/internal/domain/model"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "peloton"
	maxBodyBytes     = 8 << 20
)

// HTTPOption customizes an HTTP source.
type HTTPOption func(*HTTP)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		if d > 0 {
			h.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTP) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithHTTPClient uses a copy of c for requests, so timeouts set here never
// leak into the caller's client. A zero Timeout on c keeps the current one.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		if c == nil {
			return
		}
		cp := *c
		if cp.Timeout == 0 {
			cp.Timeout = h.client.Timeout
		}
		h.client = &cp
	}
}

// HTTP fetches the dataset with one GET request.
type HTTP struct {
	url       string
	userAgent string
	client    *http.Client
	group     singleflight.Group
}

// NewHTTP creates a remote source for url.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		url:       url,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Location returns the dataset URL.
func (h *HTTP) Location() string { return h.url }

// Fetch retrieves and decodes the dataset. Callers arriving while a request
// is in flight share its result.
func (h *HTTP) Fetch(ctx context.Context) (model.Dataset, error) {
	v, err, _ := h.group.Do(h.url, func() (any, error) {
		return h.get(ctx)
	})
	if err != nil {
		return nil, err
	}
	shared := v.(model.Dataset)
	out := make(model.Dataset, len(shared))
	copy(out, shared)
	return out, nil
}

func (h *HTTP) get(ctx context.Context) (model.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, &FetchError{URL: h.url, Kind: KindTransport, Err: err}
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: h.url, Kind: KindTransport, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: h.url, Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &FetchError{URL: h.url, Kind: KindTransport, StatusCode: resp.StatusCode, Err: err}
	}
	if len(body) > maxBodyBytes {
		return nil, &FetchError{URL: h.url, Kind: KindDecode, StatusCode: resp.StatusCode, Err: fmt.Errorf("body exceeds %d bytes", maxBodyBytes)}
	}
	return decode(h.url, body)
}

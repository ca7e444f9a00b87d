package common

import (
	"net/http"
	"time"
)

// HttpClient is an interface for the HTTP operations the GDB modules need.
// This allows mocking or custom transport layers in testing.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	Get(url string) (*http.Response, error)
	CloseIdleConnections()
}

// userAgentRoundTripper is a custom RoundTripper that adds a User-Agent header.
type userAgentRoundTripper struct {
	Wrapped   http.RoundTripper
	UserAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.UserAgent)
	return rt.Wrapped.RoundTrip(clone)
}

// Implementation of HttpClient that wraps a standard *http.Client.
type httpClient struct {
	client *http.Client
}

// NewGdbHttpClient returns a new HttpClient with the given request timeout and
// a custom User-Agent. Proxy settings are picked up from the environment
// unless the caller supplies a base client with its own transport.
func NewGdbHttpClient(userAgent string, timeout time.Duration, base *http.Client) HttpClient {
	if base == nil {
		base = &http.Client{}
	}
	if base.Transport == nil {
		base.Transport = &http.Transport{Proxy: http.ProxyFromEnvironment}
	}
	base.Transport = &userAgentRoundTripper{
		Wrapped:   base.Transport,
		UserAgent: userAgent,
	}
	base.Timeout = timeout

	return &httpClient{client: base}
}

// Implementation of the interface:

func (h *httpClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *httpClient) Get(url string) (*http.Response, error) {
	return h.client.Get(url)
}

func (h *httpClient) CloseIdleConnections() {
	h.client.CloseIdleConnections()
}

package gdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/apex/log"

	"github.com/guarzo/gdbapi/common"
)

// GdbClient is the lower-level interface for fetching raw mark payloads
// from the GDB web service.
type GdbClient interface {
	// FetchMark retrieves the raw JSON payload for code, with surrounding
	// whitespace trimmed. After any failure the client gives up for good:
	// every later call returns a ConnectivityError without touching the
	// network. This avoids paying a slow timeout per lookup when the
	// service is down for the whole run.
	FetchMark(ctx context.Context, code string) ([]byte, error)
}

// gdbClient implements GdbClient.
type gdbClient struct {
	urlTemplate string
	client      common.HttpClient

	mu     sync.Mutex
	failed bool
}

// NewGdbClient constructs a GdbClient. urlTemplate must contain the {code}
// placeholder.
func NewGdbClient(urlTemplate string, client common.HttpClient) GdbClient {
	return &gdbClient{
		urlTemplate: urlTemplate,
		client:      client,
	}
}

func (c *gdbClient) markURL(code string) string {
	return strings.ReplaceAll(c.urlTemplate, codePlaceholder, code)
}

func (c *gdbClient) FetchMark(ctx context.Context, code string) ([]byte, error) {
	c.mu.Lock()
	failed := c.failed
	c.mu.Unlock()
	if failed {
		return nil, &common.ConnectivityError{URL: c.urlTemplate}
	}

	requestURL := c.markURL(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, c.fail(requestURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(requestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.fail(requestURL, fmt.Errorf("non-200 response from GDB: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(requestURL, err)
	}
	return bytes.TrimSpace(body), nil
}

// fail latches the failure flag and wraps err as a ConnectivityError.
func (c *gdbClient) fail(url string, err error) error {
	c.mu.Lock()
	c.failed = true
	c.mu.Unlock()
	log.WithError(err).Debugf("gdb fetch failed, suppressing requests for the rest of this run")
	return &common.ConnectivityError{URL: url, Err: err}
}

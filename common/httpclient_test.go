package common_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarzo/gdbapi/common"
)

func TestNewGdbHttpClient(t *testing.T) {
	client := common.NewGdbHttpClient("MyUserAgent", 15*time.Second, &http.Client{})
	require.NotNil(t, client)

	// a nil base client is allowed
	client = common.NewGdbHttpClient("MyUserAgent", 15*time.Second, nil)
	require.NotNil(t, client)
}

func TestHttpClient_UserAgent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "TestUserAgent" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, "wrong user-agent")
			return
		}
		fmt.Fprint(w, "hello world")
	}))
	defer ts.Close()

	hc := common.NewGdbHttpClient("TestUserAgent", 5*time.Second, &http.Client{})

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := hc.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hello world", string(body))
}

func TestHttpClient_Get(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	}))
	defer ts.Close()

	hc := common.NewGdbHttpClient("UA", 5*time.Second, &http.Client{})
	resp, err := hc.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	hc.CloseIdleConnections()
}

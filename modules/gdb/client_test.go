package gdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guarzo/gdbapi/common"
	"github.com/guarzo/gdbapi/modules/gdb"
)

func newTestHTTPClient() common.HttpClient {
	return common.NewGdbHttpClient("gdbapi-test", 5*time.Second, &http.Client{})
}

func TestGdbClient_FetchMark(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("  {\"geodeticCode\":\"ABCD\"}\n"))
	}))
	defer ts.Close()

	cli := gdb.NewGdbClient(ts.URL+"/mark/{code}", newTestHTTPClient())

	raw, err := cli.FetchMark(context.Background(), "ABCD")
	require.NoError(t, err)
	// the template placeholder is substituted and the body trimmed
	assert.Equal(t, "/mark/ABCD", gotPath)
	assert.Equal(t, `{"geodeticCode":"ABCD"}`, string(raw))
}

func TestGdbClient_Non200SetsFailureFlag(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cli := gdb.NewGdbClient(ts.URL+"/mark/{code}", newTestHTTPClient())
	ctx := context.Background()

	_, err := cli.FetchMark(ctx, "ABCD")
	var connErr *common.ConnectivityError
	require.True(t, errors.As(err, &connErr))

	// second call must fail fast without a new request, even for a
	// different code
	_, err = cli.FetchMark(ctx, "WXYZ")
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGdbClient_ConnectionRefusedSetsFailureFlag(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing is listening any more

	cli := gdb.NewGdbClient(ts.URL+"/mark/{code}", newTestHTTPClient())
	ctx := context.Background()

	_, err := cli.FetchMark(ctx, "ABCD")
	var connErr *common.ConnectivityError
	require.True(t, errors.As(err, &connErr))

	_, err = cli.FetchMark(ctx, "ABCD")
	assert.True(t, errors.As(err, &connErr))
}

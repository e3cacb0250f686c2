package metaforo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dao-watchdog/lib/logger"
	"dao-watchdog/modules/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticBridge struct {
	addr string
}

func (b staticBridge) Derive(string) (string, error) {
	return b.addr, nil
}

func newTestClient(t *testing.T, baseURL string, bridge AddressBridge) *Client {
	t.Helper()
	dir := t.TempDir()
	conf := config.New(MetaforoConfig{
		ApiBase:        baseURL,
		GroupName:      "neurontest",
		PageCooldownMs: 0,
	}, &dir)
	require.NoError(t, conf.Init())

	if bridge == nil {
		bridge = staticBridge{}
	}
	c := New(conf, bridge, logger.Nop{})
	c.http.MaxRetries = 0
	c.http.RetryDelay = 0
	return c
}

func TestParseReference(t *testing.T) {
	cases := []struct {
		ref      string
		id       int64
		isThread bool
	}{
		{"66568", 66568, false},
		{"https://dao.ckb.community/thread/66568", 66568, true},
		{"https://dao.ckb.community/thread/vot-ckb-integration-for-rosen-bridge-66568", 66568, true},
		{"https://dao.ckb.community/thread/66568/", 66568, true},
	}
	for _, c := range cases {
		id, isThread, err := ParseReference(c.ref)
		assert.NoError(t, err, c.ref)
		assert.Equal(t, c.id, id, c.ref)
		assert.Equal(t, c.isThread, isThread, c.ref)
	}
}

func TestParseReferenceUnparseable(t *testing.T) {
	for _, ref := range []string{
		"https://dao.ckb.community/thread/no-digits-here",
		"not-a-reference",
		"",
	} {
		_, _, err := ParseReference(ref)
		assert.ErrorIs(t, err, ErrUnparseableReference, ref)
	}
}

func TestResolvePollBareIdentifierSkipsNetwork(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	threadID, options, err := c.ResolvePoll("12345")

	require.NoError(t, err)
	assert.Equal(t, int64(12345), threadID)
	require.Len(t, options, 1)
	assert.Equal(t, int64(12345), options[0].ID)
	assert.Equal(t, 0, requests)
}

func TestResolvePollURLFailsBeforeNetwork(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	_, _, err := c.ResolvePoll("https://dao.ckb.community/thread/no-digits")

	assert.ErrorIs(t, err, ErrUnparseableReference)
	assert.Equal(t, 0, requests)
}

func threadJSON(polls string) string {
	return fmt.Sprintf(`{"status":true,"code":20000,"data":{"thread":{"polls":%s}}}`, polls)
}

func TestResolvePollThreadOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_thread/66568", r.URL.Path)
		fmt.Fprint(w, threadJSON(`[{"options":[
			{"id":1,"html":"Yes","voters":3,"weights":1200},
			{"id":2,"html":"No","voters":1,"weights":50}
		]}]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	threadID, options, err := c.ResolvePoll("https://dao.ckb.community/thread/66568")

	require.NoError(t, err)
	assert.Equal(t, int64(66568), threadID)
	require.Len(t, options, 2)
	assert.Equal(t, "Yes", options[0].Name)
	assert.Equal(t, int64(2), options[1].ID)
}

func TestResolvePollOnlyFirstPollConsidered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threadJSON(`[
			{"options":[{"id":1,"html":"First"}]},
			{"options":[{"id":9,"html":"Second"}]}
		]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	_, options, err := c.ResolvePoll("https://dao.ckb.community/thread/66568")

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, int64(1), options[0].ID)
}

func TestResolvePollNoPoll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threadJSON(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	_, _, err := c.ResolvePoll("https://dao.ckb.community/thread/66568")
	assert.ErrorIs(t, err, ErrNoPoll)
}

func TestResolvePollNoOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, threadJSON(`[{"options":[]}]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	_, _, err := c.ResolvePoll("https://dao.ckb.community/thread/66568")
	assert.ErrorIs(t, err, ErrNoOptions)
}

func TestResolvePollEnvelopeRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":false,"code":40001,"description":"thread not visible"}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	_, _, err := c.ResolvePoll("https://dao.ckb.community/thread/66568")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 40001, apiErr.Code)
	assert.Contains(t, apiErr.Description, "not visible")
}

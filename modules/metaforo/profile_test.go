package metaforo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileJSON(addresses []string, web3Key string) string {
	addrs := ""
	for i, a := range addresses {
		if i > 0 {
			addrs += ","
		}
		addrs += fmt.Sprintf("%q", a)
	}
	key := "null"
	if web3Key != "" {
		key = fmt.Sprintf("%q", web3Key)
	}
	return fmt.Sprintf(
		`{"status":true,"code":20000,"data":{"user":{"neuron_addresses":[%s],"web3_public_key":%s}}}`,
		addrs, key,
	)
}

func TestVoterAddressesMergesBridgeDerived(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/profile/7/neurontest", r.URL.Path)
		fmt.Fprint(w, profileJSON([]string{"ckb1native"}, "0xf93178475f922083335b91c4b9a70e66172a8391"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, staticBridge{addr: "ckb1derived"})
	addresses, err := c.VoterAddresses(7)

	require.NoError(t, err)
	assert.Equal(t, []string{"ckb1native", "ckb1derived"}, addresses)
}

func TestVoterAddressesSuppressesDuplicateDerived(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profileJSON([]string{"ckb1same", "ckb1other"}, "0xabcdef"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, staticBridge{addr: "ckb1same"})
	addresses, err := c.VoterAddresses(7)

	require.NoError(t, err)
	assert.Equal(t, []string{"ckb1same", "ckb1other"}, addresses)
}

func TestVoterAddressesNoProfileDataIsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":true,"code":20000,"data":{"user":{}}}`)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, nil)
	addresses, err := c.VoterAddresses(7)

	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func TestVoterAddressesNoBridgeWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profileJSON([]string{"ckb1native"}, ""))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, staticBridge{addr: "ckb1derived"})
	addresses, err := c.VoterAddresses(7)

	require.NoError(t, err)
	assert.Equal(t, []string{"ckb1native"}, addresses)
}

package reconcile

import (
	"testing"

	"dao-watchdog/modules/metaforo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressURL(addr string) string {
	return "https://explorer.example/address/" + addr
}

func TestReconcileFlagsDiscrepancy(t *testing.T) {
	// voter reports 1000 but holds 600 + 399 = 999 on chain
	v := Vote{Vote: metaforo.Vote{UserID: 7, Name: "alice", Weight: 1000}}
	weights := map[string]int64{
		"ckb1addr1": 600,
		"ckb1addr2": 399,
	}
	v.Enrich([]string{"ckb1addr1", "ckb1addr2"}, func(addr string) int64 {
		return weights[addr]
	})

	records := Reconcile(&v, addressURL)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "alice", r.Nickname)
		assert.Equal(t, float64(1000), r.WeightMetaforo)
		assert.Equal(t, int64(999), r.WeightOnchainFloored)
		assert.True(t, r.NeedReview)
	}
	assert.Equal(t, int64(600), records[0].AddressWeightFloored)
	assert.Equal(t, int64(399), records[1].AddressWeightFloored)
	assert.Equal(t, "https://explorer.example/address/ckb1addr1", records[0].ExplorerURL)
}

func TestReconcileExactMatchPasses(t *testing.T) {
	v := Vote{Vote: metaforo.Vote{UserID: 7, Name: "bob", Weight: 999}}
	v.Enrich([]string{"ckb1addr1"}, func(string) int64 { return 999 })

	records := Reconcile(&v, addressURL)

	require.Len(t, records, 1)
	assert.False(t, records[0].NeedReview)
}

func TestReconcileZeroAddressesSentinelRecord(t *testing.T) {
	v := Vote{Vote: metaforo.Vote{UserID: 9, Name: "carol", Weight: 50}}
	v.Enrich(nil, func(string) int64 {
		t.Fatal("weigh must not be called without addresses")
		return 0
	})

	records := Reconcile(&v, addressURL)

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Address)
	assert.Equal(t, int64(0), records[0].AddressWeightFloored)
	assert.Equal(t, int64(0), records[0].WeightOnchainFloored)
	assert.Equal(t, "", records[0].ExplorerURL)
	assert.True(t, records[0].NeedReview)
}

func TestEnrichAlignsWeightsWithAddresses(t *testing.T) {
	v := Vote{Vote: metaforo.Vote{Weight: 3}}
	calls := []string{}
	v.Enrich([]string{"a", "b", "c"}, func(addr string) int64 {
		calls = append(calls, addr)
		return int64(len(calls))
	})

	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, []int64{1, 2, 3}, v.AddressWeights)
	assert.Equal(t, int64(6), v.OnchainTotal)
}

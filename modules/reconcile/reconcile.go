// Package reconcile compares platform-reported vote weights against the
// on-chain totals computed for the voter's bound addresses.
package reconcile

import (
	"dao-watchdog/lib/utils"
	"dao-watchdog/modules/metaforo"
)

// Vote is a platform vote enriched by the pipeline with the voter's bound
// addresses and their on-chain weights. AddressWeights is index-aligned
// with Addresses; OnchainTotal is their sum.
type Vote struct {
	metaforo.Vote

	Addresses      []string
	AddressWeights []int64
	OnchainTotal   int64
}

// Enrich attaches per-address weights to the vote. weigh is called once per
// address, in listing order.
func (v *Vote) Enrich(addresses []string, weigh func(address string) int64) {
	v.Addresses = addresses
	v.AddressWeights = utils.Map(addresses, weigh)
	v.OnchainTotal = 0
	for _, w := range v.AddressWeights {
		v.OnchainTotal += w
	}
}

// Record is one exported reconciliation row: one per (voter, address) pair,
// or a single sentinel row with an empty address for voters with no bound
// addresses. Field names are stable; downstream exporters rely on them.
type Record struct {
	Nickname             string  `json:"nickname" bson:"nickname"`
	UserID               int64   `json:"userid" bson:"userid"`
	WeightMetaforo       float64 `json:"weight_metaforo" bson:"weight_metaforo"`
	WeightOnchainFloored int64   `json:"weight_onchain_floored" bson:"weight_onchain_floored"`
	Address              string  `json:"address" bson:"address"`
	AddressWeightFloored int64   `json:"address_weight_floored" bson:"address_weight_floored"`
	NeedReview           bool    `json:"need_review" bson:"need_review"`
	ExplorerURL          string  `json:"explorer_url" bson:"explorer_url"`
}

// Reconcile emits the records for one enriched vote. NeedReview is decided
// once per voter, not per address: the reported weight must equal the
// floored on-chain total exactly. Deliberately no tolerance band; any
// discrepancy, however small, is flagged for human review.
func Reconcile(v *Vote, addressURL func(address string) string) []Record {
	needReview := v.Weight != float64(v.OnchainTotal)

	if len(v.Addresses) == 0 {
		return []Record{{
			Nickname:             v.Name,
			UserID:               v.UserID,
			WeightMetaforo:       v.Weight,
			WeightOnchainFloored: v.OnchainTotal,
			NeedReview:           needReview,
		}}
	}

	records := make([]Record, len(v.Addresses))
	for i, addr := range v.Addresses {
		records[i] = Record{
			Nickname:             v.Name,
			UserID:               v.UserID,
			WeightMetaforo:       v.Weight,
			WeightOnchainFloored: v.OnchainTotal,
			Address:              addr,
			AddressWeightFloored: v.AddressWeights[i],
			NeedReview:           needReview,
			ExplorerURL:          addressURL(addr),
		}
	}
	return records
}

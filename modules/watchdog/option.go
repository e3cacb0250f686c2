package watchdog

import (
	"context"
	"fmt"
	"time"

	"dao-watchdog/modules/archive"
	"dao-watchdog/modules/metaforo"
	"dao-watchdog/modules/reconcile"
)

// processOption runs the pipeline for a single poll option and returns the
// exported file paths. Vote listing is all-or-nothing; per-voter enrichment
// is best-effort.
func (w *Watchdog) processOption(threadID int64, opt metaforo.PollOption, timestamp string) ([]string, error) {
	w.Log.Info(w.Msg.Sprintf("processing_option", opt.Name, opt.ID))

	votes, err := w.Polls.ListVotes(opt.ID)
	if err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		w.Log.Info(w.Msg.Sprintf("no_votes", opt.Name))
		return nil, nil
	}

	w.Log.Info(w.Msg.Sprintf("initial_votes", opt.Name))
	w.Log.Info(w.Msg.Sprintf("votes_header"))
	for _, v := range votes {
		w.Log.Info(fmt.Sprintf("%s\t%s\t%v", v.Name, v.LastTime, v.Weight))
	}

	batch := make([]reconcile.Record, 0, len(votes))
	for i, v := range votes {
		w.Log.Info(w.Msg.Sprintf("processing_user", i+1, len(votes), v.Name, v.UserID))
		batch = append(batch, w.reconcileVote(v)...)
	}

	w.Log.Info(w.Msg.Sprintf("final_results", opt.Name))
	for _, r := range batch {
		if r.NeedReview {
			w.Log.Info(w.Msg.Sprintf("need_review", r.Nickname, r.WeightMetaforo, r.WeightOnchainFloored))
		}
	}

	files, err := w.Exporter.ExportBatch(threadID, opt.Name, timestamp, batch)
	if err != nil {
		return nil, err
	}

	if w.Archiver != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		meta := archive.RunMeta{
			ThreadID:   threadID,
			OptionID:   opt.ID,
			OptionName: opt.Name,
			RunAt:      timestamp,
		}
		if err := w.Archiver.StoreBatch(ctx, meta, batch); err != nil {
			// archiving is an add-on; the exported files are the deliverable
			w.Log.Error("failed to archive batch:", err)
		}
	}

	return files, nil
}

// reconcileVote enriches one vote with its on-chain weights and emits its
// reconciliation records. A voter without a usable identity or without
// bound addresses counts as holding exactly zero on chain.
func (w *Watchdog) reconcileVote(v metaforo.Vote) []reconcile.Record {
	ev := reconcile.Vote{Vote: v}

	if v.UserID != 0 {
		addresses, err := w.Polls.VoterAddresses(v.UserID)
		if err != nil {
			w.Log.Error(w.Msg.Sprintf("address_failed", v.UserID, err))
		} else if len(addresses) == 0 {
			w.Log.Info(w.Msg.Sprintf("no_addresses", v.UserID))
		}

		ev.Enrich(addresses, func(addr string) int64 {
			weight := w.Weights.AddressDaoWeight(addr)
			w.Log.Info(w.Msg.Sprintf("address_weight", shortAddr(addr), weight))
			return weight
		})
		w.Log.Info(w.Msg.Sprintf("user_total", v.UserID, ev.OnchainTotal))
		w.Log.Info(w.Msg.Sprintf("platform_weight", v.Weight))
	}

	return reconcile.Reconcile(&ev, w.Weights.WebAddressURL)
}

func shortAddr(a string) string {
	if len(a) <= 15 {
		return a
	}
	return a[:15]
}

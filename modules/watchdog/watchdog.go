// Package watchdog drives the reconciliation pipeline: resolve the poll,
// list votes per option, resolve voter addresses, aggregate on-chain
// weights, reconcile and hand the batches to the export collaborator.
package watchdog

import (
	"context"
	"sync"
	"time"

	"dao-watchdog/lib/logger"
	"dao-watchdog/lib/msgcat"
	agg "dao-watchdog/modules/aggregate"
	"dao-watchdog/modules/archive"
	"dao-watchdog/modules/metaforo"
	"dao-watchdog/modules/reconcile"

	"github.com/chebyrash/promise"
	"github.com/robfig/cron/v3"
)

// PollSource is the governance-platform side of the pipeline.
type PollSource interface {
	ResolvePoll(ref string) (int64, []metaforo.PollOption, error)
	ListVotes(optionID int64) ([]metaforo.Vote, error)
	VoterAddresses(userID int64) ([]string, error)
}

// WeightSource is the chain-indexing side.
type WeightSource interface {
	AddressDaoWeight(address string) int64
	WebAddressURL(address string) string
}

// BatchExporter receives one finished batch per poll option. File naming
// and layout belong to it, not to the pipeline.
type BatchExporter interface {
	ExportBatch(threadID int64, optionName, timestamp string, records []reconcile.Record) ([]string, error)
}

// RecordArchiver optionally persists batches for later comparison.
type RecordArchiver interface {
	StoreBatch(ctx context.Context, meta archive.RunMeta, records []reconcile.Record) error
}

type Params struct {
	Ref       string
	WatchSpec string // cron spec; empty means run once and exit

	Polls    PollSource
	Weights  WeightSource
	Exporter BatchExporter
	Archiver RecordArchiver // may be nil

	Msg msgcat.Catalog
	Log logger.Logger
}

type Watchdog struct {
	Params

	cron  *cron.Cron
	stop  chan struct{}
	runMu sync.Mutex
}

var _ agg.Plugin = &Watchdog{}

func New(p Params) *Watchdog {
	return &Watchdog{
		Params: p,
		// a pass longer than the cron period must not overlap the next tick
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		stop: make(chan struct{}),
	}
}

// Init rejects a malformed poll reference before any network access.
func (w *Watchdog) Init() error {
	_, _, err := metaforo.ParseReference(w.Ref)
	return err
}

func (w *Watchdog) Start() *promise.Promise[any] {
	return promise.New(func(resolve func(any), reject func(error)) {
		if w.WatchSpec == "" {
			if err := w.RunOnce(); err != nil {
				reject(err)
				return
			}
			resolve(nil)
			return
		}

		// watch mode: run now, then on every cron tick until stopped
		run := func() {
			select {
			case <-w.stop:
			default:
				if err := w.RunOnce(); err != nil {
					w.Log.Error("run failed:", err)
				}
			}
		}
		run()
		if _, err := w.cron.AddFunc(w.WatchSpec, run); err != nil {
			reject(err)
			return
		}
		w.cron.Start()
		<-w.stop
		resolve(nil)
	})
}

func (w *Watchdog) Stop() error {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	w.cron.Stop()
	return nil
}

// RunOnce performs one full reconciliation pass. Failure to resolve the
// poll reference is fatal; failure inside one option is logged and the
// remaining options are still attempted. Passes never run concurrently;
// the clients' header state is not safe for concurrent use.
func (w *Watchdog) RunOnce() error {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	timestamp := time.Now().Format("20060102150405")

	threadID, options, err := w.Polls.ResolvePoll(w.Ref)
	if err != nil {
		return err
	}

	var files []string
	for _, opt := range options {
		f, err := w.processOption(threadID, opt, timestamp)
		if err != nil {
			w.Log.Error(w.Msg.Sprintf("option_failed", opt.Name, err))
			continue
		}
		files = append(files, f...)
	}

	w.Log.Info(w.Msg.Sprintf("all_done"))
	w.Log.Info(w.Msg.Sprintf("files_generated", len(files)))
	for _, f := range files {
		w.Log.Info("  -", f)
	}
	return nil
}

// Package archive persists reconciliation batches to Mongo so successive
// watchdog runs of the same poll stay comparable over time.
package archive

import (
	"context"
	"time"

	"dao-watchdog/lib/logger"
	"dao-watchdog/modules/db"
	"dao-watchdog/modules/reconcile"
)

type RunMeta struct {
	ThreadID   int64  `bson:"thread_id"`
	OptionID   int64  `bson:"option_id"`
	OptionName string `bson:"option_name"`
	RunAt      string `bson:"run_at"`
}

type storedRecord struct {
	reconcile.Record `bson:",inline"`
	RunMeta          `bson:",inline"`
	StoredAt         time.Time `bson:"stored_at"`
}

type Archive struct {
	records *db.Collection
	log     logger.Logger
}

func New(records *db.Collection, log logger.Logger) *Archive {
	return &Archive{records: records, log: log}
}

func (a *Archive) StoreBatch(ctx context.Context, meta RunMeta, records []reconcile.Record) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	now := time.Now().UTC()
	for i, r := range records {
		docs[i] = storedRecord{
			Record:   r,
			RunMeta:  meta,
			StoredAt: now,
		}
	}

	_, err := a.records.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	a.log.Info("archived", len(records), "records for option", meta.OptionID)
	return nil
}

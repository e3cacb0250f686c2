package db

import (
	"dao-watchdog/lib/utils"
	a "dao-watchdog/modules/aggregate"

	"github.com/chebyrash/promise"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DbInstance struct {
	db   Db
	name string
	opts []*options.DatabaseOptions

	*mongo.Database
}

var _ a.Plugin = &DbInstance{}

func NewDbInstance(db Db, name string, opts ...*options.DatabaseOptions) *DbInstance {
	return &DbInstance{
		db:   db,
		name: name,
		opts: opts,
	}
}

// Init implements aggregate.Plugin. The handle resolves here because Init
// runs after the client plugin's Init, in plugin order.
func (d *DbInstance) Init() error {
	d.Database = d.db.Database(d.name, d.opts...)
	return nil
}

// Start implements aggregate.Plugin.
func (d *DbInstance) Start() *promise.Promise[any] {
	return utils.PromiseResolve[any](nil)
}

// Stop implements aggregate.Plugin.
func (d *DbInstance) Stop() error {
	return nil
}

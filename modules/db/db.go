package db

import (
	"context"

	"dao-watchdog/lib/utils"
	a "dao-watchdog/modules/aggregate"
	"dao-watchdog/modules/config"

	"github.com/chebyrash/promise"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Db interface {
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

type db struct {
	conf *config.Config[DbConfig]
	*mongo.Client
}

var _ a.Plugin = &db{}
var _ Db = &db{}

func New(conf *config.Config[DbConfig]) *db {
	return &db{conf: conf}
}

// Init connects the client. This must happen in Init, not Start: Init runs
// sequentially in plugin order, while Starts run concurrently, and the
// DbInstance/Collection plugins resolve their handles from this client.
func (db *db) Init() error {
	driver, err := mongo.Connect(context.Background(), options.Client().ApplyURI(db.conf.Get().DbURI))
	if err != nil {
		return err
	}
	db.Client = driver
	return nil
}

func (db *db) Start() *promise.Promise[any] {
	return utils.PromiseResolve[any](nil)
}

func (db *db) Stop() error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(context.Background())
}

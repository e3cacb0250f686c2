package main

import (
	"fmt"
	"os"

	"dao-watchdog/lib/ckbaddr"
	"dao-watchdog/lib/logger"
	"dao-watchdog/lib/msgcat"
	"dao-watchdog/modules/aggregate"
	"dao-watchdog/modules/archive"
	"dao-watchdog/modules/db"
	"dao-watchdog/modules/explorer"
	"dao-watchdog/modules/export"
	"dao-watchdog/modules/metaforo"
	"dao-watchdog/modules/watchdog"
)

func main() {
	args, err := ParseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	dataDir := args.dataDir
	metaforoConf := metaforo.NewConfig(&dataDir)
	explorerConf := explorer.NewConfig(&dataDir)

	network := ckbaddr.Mainnet
	if args.network == "testnet" {
		network = ckbaddr.Testnet
	}
	bridge := ckbaddr.Bridge{Net: network}

	mfClient := metaforo.New(metaforoConf, bridge, logger.PrefixedLogger{Prefix: "metaforo"})
	exClient := explorer.New(explorerConf, logger.PrefixedLogger{Prefix: "explorer"})
	exporter := export.New("vote_result", logger.PrefixedLogger{Prefix: "export"})

	plugins := []aggregate.Plugin{metaforoConf, explorerConf}

	var archiver watchdog.RecordArchiver
	if args.archive {
		dbConf := db.NewDbConfig(&dataDir)
		if uri := os.Getenv("MONGO_URL"); uri != "" {
			dbConf.Update(func(dc *db.DbConfig) {
				dc.DbURI = uri
			})
		}
		mongo := db.New(dbConf)
		instance := db.NewDbInstance(mongo, "daowatchdog")
		records := db.NewCollection(instance, "reconciliations")
		archiver = archive.New(records, logger.PrefixedLogger{Prefix: "archive"})
		plugins = append(plugins, dbConf, mongo, instance, records)
	}

	w := watchdog.New(watchdog.Params{
		Ref:       args.ref,
		WatchSpec: args.watch,
		Polls:     mfClient,
		Weights:   exClient,
		Exporter:  exporter,
		Archiver:  archiver,
		Msg:       msgcat.New(args.lang),
		Log:       logger.PrefixedLogger{Prefix: "watchdog"},
	})
	plugins = append(plugins, w)

	a := aggregate.New(plugins)

	if err := a.Run(); err != nil {
		fmt.Println("error is", err)
		os.Exit(1)
	}
}

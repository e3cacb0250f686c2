package main

import (
	"flag"
	"fmt"
	"os"
)

type args struct {
	ref     string
	network string
	lang    string
	dataDir string
	archive bool
	watch   string
}

func ParseArgs() (args, error) {
	flag.Usage = func() {
		fmt.Printf("dao-watchdog - reconciles governance poll weights against on-chain deposits.\n\n")
		fmt.Printf("Usage: %s [options] <poll url | option id>\n", os.Args[0])
		flag.PrintDefaults()
	}
	network := flag.String("network", "mainnet", "Deposit chain network for bridge-derived addresses (mainnet|testnet)")
	lang := flag.String("lang", "en", "Report language (en|zh)")
	dataDir := flag.String("data-dir", "data", "Directory for config files")
	useArchive := flag.Bool("archive", false, "Archive reconciliation records to MongoDB")
	watch := flag.String("watch", "", "Cron spec to re-run on a schedule (e.g. \"@every 24h\"); empty runs once")

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		return args{}, fmt.Errorf("missing poll reference argument")
	}
	if *network != "mainnet" && *network != "testnet" {
		return args{}, fmt.Errorf("unknown network %q", *network)
	}

	return args{
		ref:     flag.Arg(0),
		network: *network,
		lang:    *lang,
		dataDir: *dataDir,
		archive: *useArchive,
		watch:   *watch,
	}, nil
}

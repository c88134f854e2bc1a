package main

import "flag"

type flagSet struct {
	flags       *flag.FlagSet
	order       int
	pooled      bool
	logLevel    string
	logPretty   bool
	metricsAddr string
}

func newFlagSet() *flagSet {
	fs := &flagSet{flags: flag.NewFlagSet("bptree", flag.ContinueOnError)}
	fs.flags.IntVar(&fs.order, "order", 32, "maximum children per internal node")
	fs.flags.BoolVar(&fs.pooled, "pooled", false, "recycle released nodes through a sync.Pool")
	fs.flags.StringVar(&fs.logLevel, "log-level", "info", "debug, info, warn, or error")
	fs.flags.BoolVar(&fs.logPretty, "log-pretty", true, "use zerolog's console writer instead of ND-JSON")
	fs.flags.StringVar(&fs.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")
	return fs
}

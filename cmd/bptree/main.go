// Command bptree is an interactive demo shell over a single in-memory B+
// tree index: insert, look up, delete, range-scan, bulk-load, save, and
// load, with optional Prometheus metrics and structured logging.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KilimcininKorOglu/bptree"
	"github.com/KilimcininKorOglu/bptree/internal/metrics"
	"github.com/KilimcininKorOglu/bptree/internal/obslog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := newFlagSet()
	if err := fs.flags.Parse(args); err != nil {
		return 2
	}

	log := obslog.New(obslog.Config{Level: fs.logLevel, Pretty: fs.logPretty})

	var opts []bptree.Option[int64, uint64]
	opts = append(opts, bptree.WithLogger[int64, uint64](log))
	opts = append(opts, bptree.WithCodec[int64, uint64](int64Uint64Codec{}))
	if fs.pooled {
		opts = append(opts, bptree.WithPooledAllocator[int64, uint64]())
	}

	tree := bptree.New[int64, uint64](fs.order, opts...)

	var syncer *metrics.Syncer
	if fs.metricsAddr != "" {
		collector := metrics.NewCollector("bptree-cli")
		syncer = metrics.NewSyncer(collector)
		syncer.Sync(tree.Statistics())
		collector.SetSize(tree.Size())

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(fs.metricsAddr, mux); err != nil {
				log.Error(err, "metrics server exited")
			}
		}()
		log.Info("serving metrics", "addr", fs.metricsAddr)
	}

	shell := &repl{
		tree:   tree,
		log:    log,
		out:    os.Stdout,
		sync:   syncer,
		bold:   color.New(color.Bold),
		errCol: color.New(color.FgRed),
		okCol:  color.New(color.FgGreen),
	}

	fmt.Fprintln(shell.out, "bptree demo shell. type 'help' for commands.")
	return shell.run(os.Stdin)
}


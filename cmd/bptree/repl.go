package main

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"

	"github.com/KilimcininKorOglu/bptree"
	"github.com/KilimcininKorOglu/bptree/internal/metrics"
	"github.com/KilimcininKorOglu/bptree/internal/obslog"
)

type repl struct {
	tree *bptree.Tree[int64, uint64]
	log  obslog.Logger
	out  io.Writer
	sync *metrics.Syncer

	bold   *color.Color
	errCol *color.Color
	okCol  *color.Color
}

func (r *repl) run(in io.Reader) int {
	scanner := bufio.NewScanner(in)
	r.bold.Fprint(r.out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			r.bold.Fprint(r.out, "> ")
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return 0
		}
		if err := r.dispatch(fields); err != nil {
			r.errCol.Fprintln(os.Stderr, err)
		}
		r.syncMetrics()
		r.bold.Fprint(r.out, "> ")
	}
	return 0
}

func (r *repl) dispatch(fields []string) error {
	switch fields[0] {
	case "help":
		r.printHelp()
	case "insert", "set":
		return r.cmdInsert(fields[1:])
	case "get":
		return r.cmdGet(fields[1:])
	case "del", "delete":
		return r.cmdDelete(fields[1:])
	case "range":
		return r.cmdRange(fields[1:])
	case "bulkload":
		return r.cmdBulkload(fields[1:])
	case "seed":
		return r.cmdSeed(fields[1:])
	case "save":
		return r.cmdSave(fields[1:])
	case "load":
		return r.cmdLoad(fields[1:])
	case "validate":
		return r.cmdValidate()
	case "stats":
		r.printStats()
	default:
		return fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}
	return nil
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.out, `commands:
  insert <key> <value>   insert or overwrite a key
  get <key>               look up a key
  del <key>               remove a key
  range <lo> <hi>         inclusive ordered range scan
  bulkload <n>            rebuild the tree from n sequential sorted pairs
  seed <n>                insert n random pairs via faker
  save <path>             persist the tree to a file
  load <path>             replace the tree with one loaded from a file
  validate                check every structural invariant
  stats                   print the statistics snapshot
  exit                    quit`)
}

func (r *repl) cmdInsert(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: insert <key> <value>")
	}
	k, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad key: %w", err)
	}
	v, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad value: %w", err)
	}
	r.tree.Insert(k, v)
	r.okCol.Fprintln(r.out, "ok")
	return nil
}

func (r *repl) cmdGet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: get <key>")
	}
	k, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad key: %w", err)
	}
	v, ok := r.tree.Search(k)
	if !ok {
		return fmt.Errorf("key %d not found", k)
	}
	fmt.Fprintln(r.out, v)
	return nil
}

func (r *repl) cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: del <key>")
	}
	k, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad key: %w", err)
	}
	if _, ok := r.tree.Remove(k); !ok {
		return fmt.Errorf("key %d not found", k)
	}
	r.okCol.Fprintln(r.out, "ok")
	return nil
}

func (r *repl) cmdRange(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: range <lo> <hi>")
	}
	lo, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad lo: %w", err)
	}
	hi, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad hi: %w", err)
	}
	for _, p := range r.tree.RangeQuery(lo, hi) {
		fmt.Fprintf(r.out, "%d -> %d\n", p.Key, p.Value)
	}
	return nil
}

func (r *repl) cmdBulkload(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: bulkload <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("bad n: %w", err)
	}
	pairs := make([]bptree.Pair[int64, uint64], n)
	for i := 0; i < n; i++ {
		pairs[i] = bptree.Pair[int64, uint64]{Key: int64(i), Value: uint64(i)}
	}
	r.tree = bptree.BulkLoad(pairs, r.tree.Order(),
		bptree.WithLogger[int64, uint64](r.log),
		bptree.WithCodec[int64, uint64](int64Uint64Codec{}))
	r.okCol.Fprintf(r.out, "loaded %d pairs\n", n)
	return nil
}

// cmdSeed inserts n pairs with faker-generated keys, exercising the tree's
// ordinary insert path under random traffic instead of bulkload's sorted
// fast path.
func (r *repl) cmdSeed(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: seed <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("bad n: %w", err)
	}
	h := fnv.New64a()
	for i := 0; i < n; i++ {
		word := faker.Word() + faker.Word()
		h.Reset()
		h.Write([]byte(word))
		r.tree.Insert(int64(h.Sum64()), uint64(len(word)))
	}
	r.okCol.Fprintf(r.out, "seeded %d pairs\n", n)
	return nil
}

func (r *repl) cmdSave(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: save <path>")
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := r.tree.Save(f); err != nil {
		return err
	}
	r.okCol.Fprintln(r.out, "saved")
	return nil
}

func (r *repl) cmdLoad(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: load <path>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	loaded, err := bptree.LoadFromFile[int64, uint64](f, int64Uint64Codec{})
	if err != nil {
		return err
	}
	r.tree = loaded
	r.okCol.Fprintln(r.out, "loaded")
	return nil
}

func (r *repl) cmdValidate() error {
	if err := r.tree.Validate(); err != nil {
		return err
	}
	r.okCol.Fprintln(r.out, "structure ok")
	return nil
}

func (r *repl) printStats() {
	st := r.tree.Statistics()
	fmt.Fprintf(r.out, "size=%d height=%d leaves=%d internal=%d inserts=%d removes=%d searches=%d (%d hits) splits=%d/%d merges=%d/%d redistributes=%d\n",
		r.tree.Size(), r.tree.Height(), st.LeafNodeCount, st.InternalNodeCount,
		st.InsertCount, st.RemoveCount, st.SearchCount, st.SearchHitCount,
		st.LeafSplitCount, st.InternalSplitCount, st.LeafMergeCount, st.InternalMergeCount, st.RedistributeCount)
}

func (r *repl) syncMetrics() {
	if r.sync != nil {
		r.sync.Sync(r.tree.Statistics())
	}
}

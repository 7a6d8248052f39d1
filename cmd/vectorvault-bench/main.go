// Command vectorvault-bench drives the benchmark package from the command
// line: synthetic insertion and querying against a fresh index, reporting
// latency percentiles and, with --recall, recall@k against a brute-force
// baseline.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/Sant0-9/VectorVault/benchmark"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("vectorvault-bench", flag.ContinueOnError)
	dim := fs.Int("dim", 128, "vector dimension")
	numVectors := fs.Int("vectors", 10000, "number of vectors to insert")
	numQueries := fs.Int("queries", 1000, "number of queries to issue")
	k := fs.Int("k", 10, "number of neighbors per query")
	ef := fs.Int("ef", 50, "search-time beam width")
	seed := fs.Int64("seed", 1, "RNG seed")
	qps := fs.Float64("qps", 0, "cap query issuance rate; 0 means unlimited")
	recall := fs.Bool("recall", false, "compute recall@k against a brute-force baseline")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "vectorvault-bench measures insert/query latency and, with --recall, recall@k.")
		fmt.Fprintln(fs.Output(), "usage: vectorvault-bench [--dim <n>] [--vectors <n>] [--queries <n>] [--recall]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	result, err := benchmark.Run(context.Background(), benchmark.Config{
		Dim:              *dim,
		NumVectors:       *numVectors,
		NumQueries:       *numQueries,
		K:                *k,
		Ef:               *ef,
		Seed:             *seed,
		QueriesPerSecond: *qps,
		ComputeRecall:    *recall,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "vectorvault-bench:", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, "vectorvault-bench:", err)
		return 1
	}
	return 0
}

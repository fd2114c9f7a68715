// Command bigsi is a thin driver over the core: enough of a CLI to build,
// merge, and search an index end-to-end. The HTTP/CLI front-end is
// explicitly out of the core's scope; this exists to exercise it.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iqbal-lab-org/bigsi-go/bitmatrix"
	"github.com/iqbal-lab-org/bigsi-go/bloomfilter"
	"github.com/iqbal-lab-org/bigsi-go/build"
	"github.com/iqbal-lab-org/bigsi-go/index"
	"github.com/iqbal-lab-org/bigsi-go/internal/bigsilog"
	"github.com/iqbal-lab-org/bigsi-go/internal/config"
	"github.com/iqbal-lab-org/bigsi-go/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "merge-blooms":
		err = runMergeBlooms(os.Args[2:])
	case "large-build":
		err = runLargeBuild(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "insert":
		err = runInsert(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		bigsilog.L().Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bigsi <build|merge-blooms|large-build|search|insert> [flags]")
}

// runBuild reads newline-separated k-mers from a file and writes the
// resulting Bloom filter as a one-column bit-matrix file.
func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	m := fs.Uint("m", 25_000_000, "bloom filter width in bits")
	h := fs.Uint("h", 3, "number of hash functions")
	out := fs.String("out", "", "output bloom-filter matrix path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *out == "" {
		return fmt.Errorf("usage: bigsi build -m <m> -h <h> -out <path> <kmers-file>")
	}

	kmers, err := readLines(fs.Arg(0))
	if err != nil {
		return err
	}

	bf := bloomfilter.New(*m, *h)
	bf.Update(kmers)

	return writeBloomMatrix(bf, *out)
}

func writeBloomMatrix(bf *bloomfilter.BloomFilter, path string) error {
	w, err := bitmatrix.NewWriterFile(path, int(bf.M()), 1)
	if err != nil {
		return err
	}
	for r := uint(0); r < bf.M(); r++ {
		if err := w.Write(bitmatrix.BoolRow{bf.Bit(r)}); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// runMergeBlooms materializes the horizontal concatenation of several
// bit-matrix files sharing a row count into a single matrix file.
func runMergeBlooms(args []string) error {
	fs := flag.NewFlagSet("merge-blooms", flag.ExitOnError)
	rows := fs.Int("rows", 0, "shared row count")
	out := fs.String("out", "", "output matrix path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rows <= 0 || *out == "" || fs.NArg() == 0 {
		return fmt.Errorf("usage: bigsi merge-blooms -rows <r> -out <path> <path:cols>...")
	}

	sources, err := parsePathColsArgs(fs.Args())
	if err != nil {
		return err
	}

	return bitmatrix.MergeToFile(sources, *rows, *out)
}

// runLargeBuild loads a YAML config and a parallel sample-name file, and
// streams the concatenated input matrices into the configured store.
func runLargeBuild(args []string) error {
	fs := flag.NewFlagSet("large-build", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the build config YAML")
	samplesPath := fs.String("samples", "", "path to the newline-separated sample-name file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" || *samplesPath == "" || fs.NArg() == 0 {
		return fmt.Errorf("usage: bigsi large-build -config <yaml> -samples <names-file> <path:cols>...")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	names, err := readLines(*samplesPath)
	if err != nil {
		return err
	}
	sources, err := parsePathColsArgs(fs.Args())
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.StorageEngine, cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer store.Close()

	params := build.Params{NumHashes: cfg.H, BloomFilterM: cfg.M}
	return build.LargeBuild(sources, cfg.M, names, params, store)
}

// runSearch opens an existing index and prints matching samples as JSON.
func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	engine := fs.String("engine", "bolt", "storage engine (mem, bolt, redis)")
	path := fs.String("db", "", "storage path or address")
	k := fs.Int("k", 31, "k-mer length")
	threshold := fs.Float64("threshold", 1.0, "minimum fraction of k-mers required")
	contiguous := fs.Bool("contiguous", false, "score by longest contiguous k-mer run instead of raw fraction")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: bigsi search -db <path> -k <k> -threshold <f> <sequence>")
	}

	store, err := storage.Open(*engine, map[string]any{"path": *path, "addr": *path})
	if err != nil {
		return err
	}
	defer store.Close()

	idx, err := index.Open(store, *k)
	if err != nil {
		return err
	}

	results, err := idx.Search(fs.Arg(0), *threshold, *contiguous)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(searchResponse(fs.Arg(0), *threshold, results))
}

type searchResultJSON struct {
	SampleName        string  `json:"sample_name"`
	PercentKmersFound float64 `json:"percent_kmers_found"`
	NumKmers          int     `json:"num_kmers"`
	Score             float64 `json:"score"`
}

type searchResponseJSON struct {
	Query     string             `json:"query"`
	Threshold float64            `json:"threshold"`
	Results   []searchResultJSON `json:"results"`
}

func searchResponse(query string, threshold float64, results []index.SearchResult) searchResponseJSON {
	out := searchResponseJSON{Query: query, Threshold: threshold}
	for _, r := range results {
		out.Results = append(out.Results, searchResultJSON{
			SampleName:        r.SampleName,
			PercentKmersFound: r.PercentKmersFound,
			NumKmers:          r.NumKmers,
			Score:             r.Score,
		})
	}
	return out
}

// runInsert adds one sample, read from a one-column bloom-filter matrix
// file, to an existing index.
func runInsert(args []string) error {
	fs := flag.NewFlagSet("insert", flag.ExitOnError)
	engine := fs.String("engine", "bolt", "storage engine (mem, bolt, redis)")
	path := fs.String("db", "", "storage path or address")
	k := fs.Int("k", 31, "k-mer length")
	name := fs.String("name", "", "sample name")
	bloomPath := fs.String("bloom", "", "path to the sample's one-column bloom-filter matrix")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *bloomPath == "" {
		return fmt.Errorf("usage: bigsi insert -db <path> -name <sample> -bloom <path>")
	}

	store, err := storage.Open(*engine, map[string]any{"path": *path, "addr": *path})
	if err != nil {
		return err
	}
	defer store.Close()

	idx, err := index.Open(store, *k)
	if err != nil {
		return err
	}

	bf, err := readBloomMatrix(*bloomPath, idx.M(), idx.H())
	if err != nil {
		return err
	}

	return idx.InsertSample(*name, bf)
}

func readBloomMatrix(path string, m, h int) (*bloomfilter.BloomFilter, error) {
	r, err := bitmatrix.NewReaderFile(path, m, 1)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	bf := bloomfilter.New(uint(m), uint(h))
	for row := 0; row < m; row++ {
		bits, err := r.Next()
		if err != nil {
			return nil, err
		}
		if bits.Test(0) {
			bf.BitSet().Set(uint(row))
		}
	}
	return bf, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// parsePathColsArgs parses "path:cols" tokens into bitmatrix.Sources.
func parsePathColsArgs(args []string) ([]bitmatrix.Source, error) {
	sources := make([]bitmatrix.Source, len(args))
	for i, arg := range args {
		sep := strings.LastIndex(arg, ":")
		if sep < 0 {
			return nil, fmt.Errorf("invalid path:cols argument %q", arg)
		}
		cols, err := strconv.Atoi(arg[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("invalid column count in %q: %w", arg, err)
		}
		sources[i] = bitmatrix.Source{Path: arg[:sep], Cols: cols}
	}
	return sources, nil
}

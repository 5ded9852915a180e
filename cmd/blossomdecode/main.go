// See doc.go for documentation.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/sparseblossom/decoder"
	"github.com/katalvlaran/sparseblossom/dem"
	"github.com/katalvlaran/sparseblossom/matchgraph"
)

var (
	demPath      = flag.String("dem", "", "path to a detector error model file")
	syndromePath = flag.String("syndromes", "", "path to a file of syndromes, one per line, as a string of 0/1 characters")
	detOffset    = flag.Int("repeat-offset", 0, "per-iteration detector index offset for repeat blocks")
	metrics      = flag.Bool("metrics", false, "register Prometheus decode counters and a weight histogram")
	metricsAddr  = flag.String("metrics-addr", "", "if set with -metrics, serve /metrics on this address before decoding")
	verbose      = flag.Bool("verbose", false, "log one debug line per decode")
)

func main() {
	flag.Parse()

	if *demPath == "" || *syndromePath == "" {
		fmt.Fprintln(os.Stderr, "blossomdecode: -dem and -syndromes are required")
		os.Exit(1)
	}

	os.Exit(run())
}

func run() int {
	demFile, err := os.Open(*demPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}
	defer demFile.Close()

	numDetectors, numObservables, err := countDem(demFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}

	opts := []decoder.Option{}
	if *verbose {
		opts = append(opts, decoder.WithLogger(zerolog.New(os.Stderr).With().Timestamp().Logger()))
	}
	if *metrics {
		reg := prometheus.NewRegistry()
		opts = append(opts, decoder.WithReporter(newPrometheusReporter(reg)))
		if *metricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			go func() {
				_ = http.ListenAndServe(*metricsAddr, mux)
			}()
			fmt.Fprintf(os.Stderr, "blossomdecode: serving metrics on %s/metrics\n", *metricsAddr)
		}
	}

	m, err := decoder.NewMatching(numDetectors, numObservables, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}

	if _, err := demFile.Seek(0, 0); err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}
	if err := dem.Parse(demFile, m, dem.WithDetectorOffset(*detOffset)); err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}

	syndromeFile, err := os.Open(*syndromePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}
	defer syndromeFile.Close()

	sc := bufio.NewScanner(syndromeFile)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		syndrome := make([]byte, len(line))
		for i, c := range line {
			if c == '1' {
				syndrome[i] = 1
			}
		}

		prediction, err := m.Decode(syndrome)
		if err != nil {
			fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
			if errors.Is(err, decoder.ErrSyndromeLengthMismatch) {
				return 2
			}
			return 1
		}

		fmt.Fprintln(w, bitsToString(prediction))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "blossomdecode: %v\n", err)
		return 1
	}

	return 0
}

func bitsToString(bits []byte) string {
	var sb strings.Builder
	for _, b := range bits {
		if b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// countingTarget is a throwaway dem.Target that only tracks the highest
// detector and observable index the document names, so main can size the
// real decoder.Matching before replaying the document for real (the DEM
// format never declares its detector/observable counts up front).
type countingTarget struct {
	numDetectors   int
	numObservables int
}

func (c *countingTarget) AddEdge(u, v matchgraph.NodeIdx, _ float64, obsIndices []int, _ float64) error {
	c.noteNode(u)
	c.noteNode(v)
	c.noteObs(obsIndices)

	return nil
}

func (c *countingTarget) AddBoundaryEdge(u matchgraph.NodeIdx, _ float64, obsIndices []int, _ float64) error {
	c.noteNode(u)
	c.noteObs(obsIndices)

	return nil
}

func (c *countingTarget) noteNode(n matchgraph.NodeIdx) {
	if int(n)+1 > c.numDetectors {
		c.numDetectors = int(n) + 1
	}
}

func (c *countingTarget) noteObs(obsIndices []int) {
	for _, idx := range obsIndices {
		if idx+1 > c.numObservables {
			c.numObservables = idx + 1
		}
	}
}

func countDem(r *os.File) (numDetectors, numObservables int, err error) {
	c := &countingTarget{}
	if err := dem.Parse(r, c, dem.WithDetectorOffset(*detOffset)); err != nil {
		return 0, 0, err
	}

	return c.numDetectors, c.numObservables, nil
}

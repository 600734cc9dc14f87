package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/limaJavier/ottypology/pkg/gen"
	"github.com/limaJavier/ottypology/pkg/typology"

	"github.com/samber/lo"
)

const resultsFile = "benchmark_results.csv"

type BenchmarkResult struct {
	Family     string
	Segments   string
	RootLength int
	Workers    int
	Rankings   int
	Inputs     int
	Duration   int64
	Nonconcat  int
	Unattested int
}

func main() {
	segmentsPtr := flag.String("segments", "CCCVV", "Segments every stem is built from")
	rootLengthPtr := flag.Int("root", 3, "Number of segments in the root")
	workersPtr := flag.String("workers", fmt.Sprintf("1,2,4,%d", runtime.NumCPU()), "Comma separated worker counts to benchmark")
	flag.Parse()

	workerCounts, err := parseWorkerCounts(*workersPtr)
	if err != nil {
		log.Fatalf("invalid worker counts: %v", err)
	}

	generator, err := gen.NewGenerator(*segmentsPtr, *rootLengthPtr)
	if err != nil {
		log.Fatalf("cannot build generator: %v", err)
	}

	families := typology.Families()
	results := make([]BenchmarkResult, 0, len(families)*len(workerCounts))

	for _, family := range families {
		rankings := lo.Must(typology.Family(family))
		for _, workers := range workerCounts {
			log.Printf("Benchmarking family \"%v\" (%d rankings) with %d workers\n", family, len(rankings), workers)

			duration, summary := measure(generator, rankings, workers)

			results = append(results, BenchmarkResult{
				Family:     family,
				Segments:   generator.Segments(),
				RootLength: generator.RootLength(),
				Workers:    workers,
				Rankings:   summary.Rankings(),
				Inputs:     summary.Inputs,
				Duration:   duration,
				Nonconcat:  summary.AtLeastOneNonconcat,
				Unattested: summary.AtLeastOneUnattested,
			})
		}
	}

	toCsv(results)
}

func measure(generator *gen.Generator, rankings [][]string, workers int) (duration int64, summary typology.Summary) {
	driver := typology.NewDriver(generator, workers)

	start := time.Now()
	summary, err := driver.Count(rankings)
	if err != nil {
		log.Fatalf("an error occurred during the evaluation with %d workers: %v", workers, err)
	}
	return time.Since(start).Milliseconds(), summary
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Family", "Segments", "Root Length", "Workers", "Rankings", "Inputs", "Duration(ms)", "Non-concat Rankings", "Unattested Rankings"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Family,
			result.Segments,
			fmt.Sprintf("%d", result.RootLength),
			fmt.Sprintf("%d", result.Workers),
			fmt.Sprintf("%d", result.Rankings),
			fmt.Sprintf("%d", result.Inputs),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.Nonconcat),
			fmt.Sprintf("%d", result.Unattested),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseWorkerCounts(str string) ([]int, error) {
	counts := make([]int, 0)
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		count, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		} else if count <= 0 {
			return nil, fmt.Errorf("worker count must be greater than 0: %v", count)
		}
		counts = append(counts, count)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("at least one worker count is required")
	}
	return lo.Uniq(counts), nil
}

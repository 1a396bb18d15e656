// Command benchmark measures insert and select latency against an
// in-memory fensql table and writes a JSON report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"fensql/pkg/database"
	"fensql/pkg/logging"
	"fensql/pkg/storage/page"
)

// BenchmarkReport aggregates the results of every benchmark in one run.
type BenchmarkReport struct {
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	TotalDuration time.Duration     `json:"total_duration"`
	TableName     string            `json:"table_name"`
	MaxPages      uint32            `json:"max_pages"`
	Results       []BenchmarkResult `json:"results"`
}

var cli struct {
	Output     string `name:"output" default:"./benchmark-results" type:"path" help:"Directory for the JSON report."`
	Iterations int    `name:"iterations" default:"200" help:"Select scans to time."`
	MaxPages   uint32 `name:"max-pages" default:"100" help:"Page budget of the benchmarked table."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("benchmark"),
		kong.Description("Time inserts until the table is full, then full scans."),
		kong.DefaultEnvars("BENCHMARK"),
	)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log := logging.WithComponent("benchmark")
	db := database.NewDatabase("bench", page.NewLayout(cli.MaxPages))
	defer db.Close()

	report := BenchmarkReport{
		StartTime: time.Now(),
		TableName: db.Name(),
		MaxPages:  cli.MaxPages,
	}

	ctx := context.Background()
	capacity := int(db.Layout().MaxRows)

	inserts := runBenchmark(ctx, db, "Insert until full", capacity, func(i int) string {
		return fmt.Sprintf("insert %d user%d person%d@example.com", i+1, i+1, i+1)
	})
	report.Results = append(report.Results, inserts)
	printBenchmarkResult(inserts)

	overflow := runBenchmark(ctx, db, "Insert into full table", 10, func(i int) string {
		return fmt.Sprintf("insert %d late late@example.com", capacity+i+1)
	})
	report.Results = append(report.Results, overflow)
	printBenchmarkResult(overflow)

	scans := runBenchmark(ctx, db, "Full scan", cli.Iterations, func(int) string { return "select" })
	report.Results = append(report.Results, scans)
	printBenchmarkResult(scans)

	report.EndTime = time.Now()
	report.TotalDuration = report.EndTime.Sub(report.StartTime)

	info := db.GetStatistics()
	log.Infow("benchmark finished",
		"rows", info.RowCount,
		"memory", humanize.Bytes(info.AllocatedBytes),
		"duration", report.TotalDuration,
	)

	return saveReport(report, cli.Output)
}

func saveReport(report BenchmarkReport, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode report")
	}

	path := filepath.Join(dir, fmt.Sprintf("benchmark_%s.json", report.StartTime.Format("20060102_150405")))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "write report")
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}

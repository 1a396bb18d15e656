package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"fensql/pkg/database"
)

const maxErrorSamples = 5

// BenchmarkResult captures the timing statistics of one benchmark.
type BenchmarkResult struct {
	Name             string        `json:"name"`
	Iterations       int           `json:"iterations"`
	TotalDuration    time.Duration `json:"total_duration_ns"`
	AvgDuration      time.Duration `json:"avg_duration_ns"`
	MinDuration      time.Duration `json:"min_duration_ns"`
	MaxDuration      time.Duration `json:"max_duration_ns"`
	MedianDuration   time.Duration `json:"median_duration_ns"`
	P95Duration      time.Duration `json:"p95_duration_ns"`
	P99Duration      time.Duration `json:"p99_duration_ns"`
	QueriesPerSecond float64       `json:"queries_per_second"`
	SuccessCount     int           `json:"success_count"`
	ErrorCount       int           `json:"error_count"`
	ErrorSamples     []string      `json:"error_samples"`
}

// runBenchmark executes query(i) for i in [0, iterations) one after another
// and summarizes the latencies.
func runBenchmark(ctx context.Context, db *database.Database, name string, iterations int, query func(i int) string) BenchmarkResult {
	durations := make([]time.Duration, 0, iterations)
	result := BenchmarkResult{Name: name, Iterations: iterations}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		queryStart := time.Now()
		_, err := db.ExecuteQuery(ctx, query(i))
		durations = append(durations, time.Since(queryStart))

		if err != nil {
			result.ErrorCount++
			if len(result.ErrorSamples) < maxErrorSamples {
				result.ErrorSamples = append(result.ErrorSamples, err.Error())
			}
			continue
		}
		result.SuccessCount++
	}
	result.TotalDuration = time.Since(start)

	summarize(&result, durations)
	return result
}

// summarize fills the latency statistics from the per-query durations.
func summarize(result *BenchmarkResult, durations []time.Duration) {
	if len(durations) == 0 {
		return
	}
	slices.Sort(durations)

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	n := len(durations)
	result.AvgDuration = sum / time.Duration(n)
	result.MinDuration = durations[0]
	result.MaxDuration = durations[n-1]
	result.MedianDuration = durations[n/2]
	result.P95Duration = durations[int(float64(n)*0.95)]
	result.P99Duration = durations[int(float64(n)*0.99)]
	if result.TotalDuration > 0 {
		result.QueriesPerSecond = float64(n) / result.TotalDuration.Seconds()
	}
}

// formatDuration formats a duration with units suited to its size.
// Examples: 1.23ms, 456.78µs, 12.34s
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

func printBenchmarkResult(result BenchmarkResult) {
	successRate := 0.0
	if result.Iterations > 0 {
		successRate = float64(result.SuccessCount) / float64(result.Iterations) * 100
	}

	fmt.Printf("  ┌─ %s\n", result.Name)
	fmt.Printf("  │  Total Time:        %s\n", formatDuration(result.TotalDuration))
	fmt.Printf("  │  Avg per Query:     %s\n", formatDuration(result.AvgDuration))
	fmt.Printf("  │  Min / Max:         %s / %s\n", formatDuration(result.MinDuration), formatDuration(result.MaxDuration))
	fmt.Printf("  │  Median (P50):      %s\n", formatDuration(result.MedianDuration))
	fmt.Printf("  │  P95 / P99:         %s / %s\n", formatDuration(result.P95Duration), formatDuration(result.P99Duration))
	fmt.Printf("  │  Throughput:        %.0f queries/sec\n", result.QueriesPerSecond)
	fmt.Printf("  │  Success Rate:      %.1f%% (%d/%d)\n", successRate, result.SuccessCount, result.Iterations)

	if len(result.ErrorSamples) > 0 {
		safe := strings.NewReplacer("\n", " ", "\r", " ").Replace(result.ErrorSamples[0])
		fmt.Printf("  │  Sample error:      %s\n", safe)
	}
	fmt.Println("  └─")
}

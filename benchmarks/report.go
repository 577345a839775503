package benchmarks

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Report is a serializable record of one benchmark sweep.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Results  []Result       `json:"results"`
	Summary  ReportSummary  `json:"summary"`
}

// ReportMetadata describes when and how the sweep was run.
type ReportMetadata struct {
	Timestamp  string `json:"timestamp"`
	Forwarding bool   `json:"forwarding"`
}

// ReportSummary aggregates the sweep.
type ReportSummary struct {
	TotalBenchmarks   int     `json:"total_benchmarks"`
	TotalCycles       uint64  `json:"total_cycles"`
	TotalStalls       uint64  `json:"total_stalls"`
	TotalInstructions uint64  `json:"total_instructions"`
	AggregateCPI      float64 `json:"aggregate_cpi"`
}

// RunAll executes every benchmark in the set and assembles a report.
func RunAll(benches []Benchmark, forwarding bool) Report {
	report := Report{
		Metadata: ReportMetadata{
			Timestamp:  time.Now().Format(time.RFC3339),
			Forwarding: forwarding,
		},
	}

	for _, bench := range benches {
		result := Run(bench, forwarding)
		report.Results = append(report.Results, result)
		report.Summary.TotalCycles += result.Cycles
		report.Summary.TotalStalls += result.Stalls
		report.Summary.TotalInstructions += result.Instructions
	}

	report.Summary.TotalBenchmarks = len(report.Results)
	if report.Summary.TotalInstructions > 0 {
		report.Summary.AggregateCPI = float64(report.Summary.TotalCycles) /
			float64(report.Summary.TotalInstructions)
	}

	return report
}

// Save writes the report as indented JSON.
func (r Report) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

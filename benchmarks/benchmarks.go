// Package benchmarks provides canned workloads for validating the pipeline
// model and comparing stall and forwarding behavior.
package benchmarks

import (
	"github.com/sarchlab/mcsim/emu"
	"github.com/sarchlab/mcsim/loader"
	"github.com/sarchlab/mcsim/timing/pipeline"
)

// Benchmark is one self-contained workload.
type Benchmark struct {
	// Name identifies the benchmark.
	Name string

	// Description explains what the benchmark measures.
	Description string

	// Lines is the assembly program shared by all cores.
	Lines []string

	// NumCores is the number of simulated cores; zero means one.
	NumCores int

	// Setup seeds register state before the run.
	Setup func(core *emu.Core)

	// ExpectedCycles and ExpectedStalls are the reference counts with
	// forwarding disabled.
	ExpectedCycles uint64
	ExpectedStalls uint64
}

// Result holds the measured statistics of one benchmark run.
type Result struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Forwarding   bool    `json:"forwarding"`
	Cycles       uint64  `json:"cycles"`
	Stalls       uint64  `json:"stalls"`
	Instructions uint64  `json:"instructions"`
	CPI          float64 `json:"cpi"`
}

// Execute builds and drains a pipeline for the benchmark and returns it
// together with the run statistics.
func Execute(bench Benchmark, forwarding bool) (*pipeline.Pipeline, pipeline.Statistics) {
	numCores := bench.NumCores
	if numCores < 1 {
		numCores = 1
	}

	p := pipeline.NewPipeline(loader.FromLines(bench.Lines...), numCores,
		pipeline.WithForwarding(forwarding))
	if bench.Setup != nil {
		for _, core := range p.Cores() {
			bench.Setup(core)
		}
	}

	stats := p.Run()
	return p, stats
}

// Run executes the benchmark and packages the statistics as a Result.
func Run(bench Benchmark, forwarding bool) Result {
	_, stats := Execute(bench, forwarding)
	return Result{
		Name:         bench.Name,
		Description:  bench.Description,
		Forwarding:   forwarding,
		Cycles:       stats.Cycles,
		Stalls:       stats.Stalls,
		Instructions: stats.Instructions,
		CPI:          stats.CPI(),
	}
}

// GetMicrobenchmarks returns the standard workload set. Each benchmark
// targets one pipeline characteristic.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticIndependent(),
		dependencyChain(),
		dependencyShadow(),
		swapExchange(),
		linkAndJump(),
		coreDivergence(),
	}
}

// Independent ALU operations overlap fully: one retirement per cycle once
// the pipeline fills.
func arithmeticIndependent() Benchmark {
	return Benchmark{
		Name:        "arithmetic_independent",
		Description: "three independent ADDs, full overlap, no stalls",
		Lines: []string{
			"ADD x1 x2 x4",
			"ADD x5 x6 x7",
			"ADD x8 x9 x10",
		},
		Setup: func(core *emu.Core) {
			core.Regs[2] = 5
			core.Regs[4] = 7
		},
		ExpectedCycles: 8,
		ExpectedStalls: 0,
	}
}

// A consumer directly behind its producer costs one stall without
// forwarding.
func dependencyChain() Benchmark {
	return Benchmark{
		Name:        "dependency_chain",
		Description: "back-to-back RAW pair, one stall without forwarding",
		Lines: []string{
			"ADD x1 x2 x4",
			"ADD x5 x1 x6",
		},
		Setup: func(core *emu.Core) {
			core.Regs[2] = 5
			core.Regs[4] = 7
		},
		ExpectedCycles: 7,
		ExpectedStalls: 1,
	}
}

// The instruction behind a stalled fetch pays the delay even when it has no
// dependency of its own.
func dependencyShadow() Benchmark {
	return Benchmark{
		Name:        "dependency_shadow",
		Description: "independent instruction delayed behind a RAW stall",
		Lines: []string{
			"ADD x1 x2 x4",
			"ADD x5 x1 x6",
			"ADD x7 x8 x9",
		},
		Setup: func(core *emu.Core) {
			core.Regs[2] = 5
			core.Regs[4] = 7
		},
		ExpectedCycles: 9,
		ExpectedStalls: 1,
	}
}

func swapExchange() Benchmark {
	return Benchmark{
		Name:        "swap_exchange",
		Description: "single SWAP exchanging two seeded registers",
		Lines:       []string{"SWAP x0 x5 x6"},
		Setup: func(core *emu.Core) {
			core.Regs[5] = 3
			core.Regs[6] = 9
		},
		ExpectedCycles: 6,
		ExpectedStalls: 0,
	}
}

func linkAndJump() Benchmark {
	return Benchmark{
		Name:           "link_and_jump",
		Description:    "single JAL writing the link register",
		Lines:          []string{"JAL x1 8"},
		ExpectedCycles: 6,
		ExpectedStalls: 0,
	}
}

// Cores share one program; the branch over the core-id register makes their
// program counters diverge.
func coreDivergence() Benchmark {
	return Benchmark{
		Name:           "core_divergence",
		Description:    "two cores branching differently on the core id",
		Lines:          []string{"BNE x3 x2 8"},
		NumCores:       2,
		ExpectedCycles: 6,
		ExpectedStalls: 0,
	}
}

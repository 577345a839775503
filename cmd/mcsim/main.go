// Package main provides the entry point for mcsim, an instructional
// multi-core pipeline simulator for a small RISC-style assembly subset.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/mcsim/emu"
	"github.com/sarchlab/mcsim/loader"
	"github.com/sarchlab/mcsim/timing/latency"
	"github.com/sarchlab/mcsim/timing/pipeline"
)

var (
	numCores   = flag.Int("cores", 4, "Number of simulated cores")
	memSize    = flag.Int("mem", pipeline.DefaultMemorySize, "Data memory size in words")
	forwarding = flag.Bool("forwarding", false, "Enable the data-forwarding path")
	configPath = flag.String("config", "", "Path to timing configuration JSON file")
	dumpMem    = flag.Int("dump-mem", 8, "Words to print per memory partition (0 to skip)")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	atexit.Exit(1)
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mcsim [options] <program.asm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	prog, err := loader.Load(flag.Arg(0))
	if err != nil {
		fatalf("Error loading program: %v", err)
	}

	table := latency.NewTable()
	if *configPath != "" {
		config, err := latency.LoadConfig(*configPath)
		if err != nil {
			fatalf("Error loading timing config: %v", err)
		}
		if table, err = latency.NewTableWithConfig(config); err != nil {
			fatalf("Invalid timing config: %v", err)
		}
	}

	mem := emu.NewDataMemory(*memSize, *numCores)
	seedMemory(mem)

	pipe := pipeline.NewPipeline(prog, *numCores,
		pipeline.WithLatencyTable(table),
		pipeline.WithForwarding(*forwarding),
		pipeline.WithDataMemory(mem),
	)

	if *verbose {
		fmt.Printf("Running %d instructions on %d cores (forwarding=%v)\n",
			prog.Len(), *numCores, *forwarding)
	}

	stats := pipe.Run()

	printRegisters(pipe)

	mem.SortPartitions()
	if *dumpMem > 0 {
		printMemory(mem, *dumpMem)
	}

	fmt.Printf("\nCycles: %d\n", stats.Cycles)
	fmt.Printf("Stalls: %d\n", stats.Stalls)
	fmt.Printf("Instructions retired: %d\n", stats.Instructions)
	if stats.Instructions > 0 {
		fmt.Printf("CPI: %.2f\n", stats.CPI())
	}

	atexit.Exit(0)
}

// seedMemory fills each core's partition with a descending pattern so the
// post-run partition sort has visible work to do.
func seedMemory(mem *emu.DataMemory) {
	for core := 0; core < mem.NumCores(); core++ {
		lo, hi := mem.Partition(core)
		for addr := lo; addr < hi; addr++ {
			mem.Write(addr, int64(hi-addr))
		}
	}
}

// printRegisters prints every core's register file as a table.
func printRegisters(pipe *pipeline.Pipeline) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 1, ' ', 0)

	fmt.Fprint(w, "reg")
	for _, core := range pipe.Cores() {
		fmt.Fprintf(w, "\tcore%d", core.ID)
	}
	fmt.Fprintln(w)

	for reg := 0; reg < len(pipe.Core(0).Regs); reg++ {
		fmt.Fprintf(w, "x%d", reg)
		for _, core := range pipe.Cores() {
			fmt.Fprintf(w, "\t%d", core.Regs[reg])
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

// printMemory prints the head of each sorted memory partition.
func printMemory(mem *emu.DataMemory, words int) {
	fmt.Println("\nData memory (sorted per partition):")
	for core := 0; core < mem.NumCores(); core++ {
		lo, hi := mem.Partition(core)
		if lo+words < hi {
			hi = lo + words
		}
		fmt.Printf("core%d [%d:%d] = %v\n", core, lo, hi, mem.Values(lo, hi))
	}
}

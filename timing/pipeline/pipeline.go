package pipeline

import (
	"fmt"

	"github.com/sarchlab/mcsim/emu"
	"github.com/sarchlab/mcsim/insts"
	"github.com/sarchlab/mcsim/loader"
	"github.com/sarchlab/mcsim/timing/latency"
)

// DefaultMemorySize is the default shared data memory size in words.
const DefaultMemorySize = 4096

// Statistics holds run statistics for the whole machine.
type Statistics struct {
	// Cycles is the total number of global cycles simulated.
	Cycles uint64
	// Stalls is the number of hazard stalls recorded across all cores.
	Stalls uint64
	// Instructions is the number of instructions retired across all cores.
	Instructions uint64
}

// CPI returns the cycles per retired instruction.
func (s Statistics) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Hook observes a stage event for one core. The memory and writeback stages
// have no architectural effect in this model; hooks are where consumers can
// attach cycle-stamping or tracing.
type Hook func(coreID int, inst *insts.Instruction)

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithLatencyTable sets a custom per-opcode latency table.
func WithLatencyTable(table *latency.Table) PipelineOption {
	return func(p *Pipeline) {
		p.latencyTable = table
	}
}

// WithForwarding enables or disables the data-forwarding path.
func WithForwarding(enabled bool) PipelineOption {
	return func(p *Pipeline) {
		p.forwarding = enabled
	}
}

// WithDataMemory sets the shared data memory.
func WithDataMemory(mem *emu.DataMemory) PipelineOption {
	return func(p *Pipeline) {
		p.dataMemory = mem
	}
}

// WithMemoryHook sets the memory-stage hook.
func WithMemoryHook(hook Hook) PipelineOption {
	return func(p *Pipeline) {
		p.memoryHook = hook
	}
}

// WithWritebackHook sets the writeback-stage hook.
func WithWritebackHook(hook Hook) PipelineOption {
	return func(p *Pipeline) {
		p.writebackHook = hook
	}
}

// Pipeline is the multi-core cycle scheduler. Each core owns a classic
// five-stage in-order pipeline (fetch, decode, execute, memory, writeback);
// all cores share one instruction stream and one data memory and advance in
// lockstep, one global cycle at a time.
//
// Scheduling is single-threaded and cooperative: within a cycle every active
// core is serviced once, stages processed in writeback→fetch order against
// state captured at the start of the core's turn, so no stage observes a
// same-cycle write and no core observes another core's in-cycle writes.
type Pipeline struct {
	program  *loader.Program
	decoder  *insts.Decoder
	executor *emu.Executor

	cores []*emu.Core

	// Stage slots, indexed by core id.
	fetch     []StageSlot
	decode    []StageSlot
	execute   []StageSlot
	memory    []StageSlot
	writeback []StageSlot

	hazardUnit     *HazardUnit
	forwardingUnit *ForwardingUnit
	forwarding     bool

	latencyTable *latency.Table
	dataMemory   *emu.DataMemory

	memoryHook    Hook
	writebackHook Hook

	stats   Statistics
	started bool
}

// NewPipeline creates a lockstep pipeline over the shared program with the
// given number of cores.
func NewPipeline(program *loader.Program, numCores int, opts ...PipelineOption) *Pipeline {
	if numCores < 1 {
		numCores = 1
	}

	p := &Pipeline{
		program:        program,
		decoder:        insts.NewDecoder(),
		executor:       emu.NewExecutor(),
		cores:          make([]*emu.Core, numCores),
		fetch:          make([]StageSlot, numCores),
		decode:         make([]StageSlot, numCores),
		execute:        make([]StageSlot, numCores),
		memory:         make([]StageSlot, numCores),
		writeback:      make([]StageSlot, numCores),
		hazardUnit:     NewHazardUnit(),
		forwardingUnit: NewForwardingUnit(),
	}
	for i := range p.cores {
		p.cores[i] = emu.NewCore(i)
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.latencyTable == nil {
		p.latencyTable = latency.NewTable()
	}
	if p.dataMemory == nil {
		p.dataMemory = emu.NewDataMemory(DefaultMemorySize, numCores)
	}

	return p
}

// SetForwarding toggles the forwarding path. It is only callable before the
// run starts.
func (p *Pipeline) SetForwarding(enabled bool) error {
	if p.started {
		return fmt.Errorf("cannot toggle forwarding after the run has started")
	}
	p.forwarding = enabled
	return nil
}

// SetLatency configures the execute latency of an opcode. It is only
// callable before the run starts.
func (p *Pipeline) SetLatency(op insts.Op, cycles uint64) error {
	if p.started {
		return fmt.Errorf("cannot configure latency after the run has started")
	}
	return p.latencyTable.SetLatency(op, cycles)
}

// NumCores returns the number of simulated cores.
func (p *Pipeline) NumCores() int {
	return len(p.cores)
}

// Core returns the state of one core.
func (p *Pipeline) Core(id int) *emu.Core {
	return p.cores[id]
}

// Cores returns the per-core state array.
func (p *Pipeline) Cores() []*emu.Core {
	return p.cores
}

// DataMemory returns the shared data memory.
func (p *Pipeline) DataMemory() *emu.DataMemory {
	return p.dataMemory
}

// Stats returns the run statistics.
func (p *Pipeline) Stats() Statistics {
	return p.stats
}

// FetchSlot returns a core's fetch-stage slot.
func (p *Pipeline) FetchSlot(id int) *StageSlot { return &p.fetch[id] }

// DecodeSlot returns a core's decode-stage slot.
func (p *Pipeline) DecodeSlot(id int) *StageSlot { return &p.decode[id] }

// ExecuteSlot returns a core's execute-stage slot.
func (p *Pipeline) ExecuteSlot(id int) *StageSlot { return &p.execute[id] }

// MemorySlot returns a core's memory-stage slot.
func (p *Pipeline) MemorySlot(id int) *StageSlot { return &p.memory[id] }

// WritebackSlot returns a core's writeback-stage slot.
func (p *Pipeline) WritebackSlot(id int) *StageSlot { return &p.writeback[id] }

// coreActive reports whether a core still has work: an occupied stage slot
// or a program counter that indexes an existing instruction.
func (p *Pipeline) coreActive(id int) bool {
	if p.fetch[id].Valid || p.decode[id].Valid || p.execute[id].Valid ||
		p.memory[id].Valid || p.writeback[id].Valid {
		return true
	}
	_, ok := p.program.At(p.cores[id].PC)
	return ok
}

// Done reports whether the run has reached its terminal state: no core has
// an in-flight instruction or anything left to fetch.
func (p *Pipeline) Done() bool {
	for id := range p.cores {
		if p.coreActive(id) {
			return false
		}
	}
	return true
}

// Run advances cycles until the machine drains, and returns the statistics.
func (p *Pipeline) Run() Statistics {
	for !p.Done() {
		p.Tick()
	}
	return p.stats
}

// Tick advances the whole machine by one global cycle. Every active core is
// serviced once; the cycle counter increments once per call, not per core.
// Calling Tick on a drained machine is a no-op.
func (p *Pipeline) Tick() {
	if p.Done() {
		return
	}
	p.started = true

	for id := range p.cores {
		if p.coreActive(id) {
			p.tickCore(id)
		}
	}

	p.stats.Cycles++
}

// tickCore advances one core's pipeline by one cycle. Stages are processed
// in writeback→fetch order so each instruction moves forward at most one
// stage per cycle; the hazard and forwarding decisions use the slot state
// captured before any stage advances.
func (p *Pipeline) tickCore(id int) {
	core := p.cores[id]

	// Start-of-cycle snapshot for the hazard and forwarding decisions.
	savedDecode := p.decode[id]
	savedExecute := p.execute[id]
	savedMemory := p.memory[id]
	savedWriteback := p.writeback[id]

	hazardStall := false
	if !p.forwarding {
		hazardStall = p.hazardUnit.DetectStall(
			&savedDecode, &savedExecute, &savedMemory, &savedWriteback)
	}

	// Writeback: drain the retiring instruction.
	if p.writeback[id].Valid {
		if p.writebackHook != nil {
			p.writebackHook(id, p.writeback[id].Inst)
		}
		p.stats.Instructions++
		p.writeback[id].Clear()
	}

	// Memory: no opcode in the subset touches data memory; the stage only
	// invokes the hook and passes the instruction along.
	if p.memory[id].Valid {
		if p.memoryHook != nil {
			p.memoryHook(id, p.memory[id].Inst)
		}
		p.writeback[id] = p.memory[id]
		p.memory[id].Clear()
	}

	// Execute: count down the configured latency; the instruction runs and
	// moves on the cycle the counter reaches zero.
	if p.execute[id].Valid {
		p.execute[id].LatencyRemaining--
		if p.execute[id].LatencyRemaining == 0 {
			p.executor.Execute(p.execute[id].Inst, core)
			p.memory[id] = p.execute[id]
			p.execute[id].Clear()
		}
	}

	// Decode: promote into the execute slot when it is free, loading the
	// fresh latency counter. A busy execute slot backpressures decode
	// without touching the stall counter.
	if p.decode[id].Valid && !p.execute[id].Valid {
		if p.forwarding {
			p.forwardingUnit.Apply(p.decode[id].Inst,
				&savedExecute, &savedMemory, &savedWriteback)
		}
		p.execute[id] = p.decode[id]
		p.execute[id].LatencyRemaining = p.latencyTable.Latency(p.execute[id].Inst)
		p.decode[id].Clear()
	}

	// Fetch: a hazard holds the fetch slot and suppresses the new fetch;
	// otherwise promote into decode when it is free.
	if hazardStall {
		core.Stalled = true
		p.stats.Stalls++
	} else {
		core.Stalled = false
		if p.fetch[id].Valid && !p.decode[id].Valid {
			p.decode[id] = p.fetch[id]
			p.fetch[id].Clear()
		}
	}

	// New fetch: decode the next program line into the fetch slot and step
	// the program counter immediately. Control transfers adjust the live
	// counter again when they execute.
	if !core.Stalled && !p.fetch[id].Valid {
		if line, ok := p.program.At(core.PC); ok {
			p.fetch[id] = StageSlot{
				Valid: true,
				Inst:  p.decoder.Decode(line, id, core.PC),
			}
			core.PC += 4
		}
	}
}

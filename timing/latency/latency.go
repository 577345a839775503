// Package latency provides per-opcode execute-stage timing for the
// simulator.
//
// Every known opcode defaults to a single cycle. Latencies are configured
// before a run starts, either directly through Table.SetLatency or from a
// JSON TimingConfig file.
package latency

import (
	"fmt"

	"github.com/sarchlab/mcsim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	cycles map[insts.Op]uint64
}

// NewTable creates a latency table with every opcode at the default single
// cycle.
func NewTable() *Table {
	return &Table{
		cycles: make(map[insts.Op]uint64),
	}
}

// NewTableWithConfig creates a latency table populated from a timing
// configuration.
func NewTableWithConfig(config *TimingConfig) (*Table, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	t := NewTable()
	config.Apply(t)
	return t, nil
}

// Latency returns the execute-stage latency in cycles for the given
// instruction. Unconfigured opcodes, including the unknown-opcode marker,
// take one cycle.
func (t *Table) Latency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}
	if c, ok := t.cycles[inst.Op]; ok {
		return c
	}
	return 1
}

// SetLatency sets the execute-stage latency for an opcode. Latencies must be
// positive.
func (t *Table) SetLatency(op insts.Op, cycles uint64) error {
	if cycles == 0 {
		return fmt.Errorf("latency for %v must be > 0", op)
	}
	t.cycles[op] = cycles
	return nil
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	for op, cycles := range t.cycles {
		c.cycles[op] = cycles
	}
	return c
}

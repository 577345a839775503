// Package emu provides the architectural state of the simulated cores and
// the functional execution of instructions.
package emu

import "github.com/sarchlab/mcsim/insts"

// Core holds the architectural state of one simulated core: 32 signed
// general-purpose registers, a word-aligned program counter, and the stall
// flag maintained by the pipeline's hazard logic.
type Core struct {
	// Regs holds general-purpose registers x0-x31.
	// Regs[3] starts as the core id; it stays an ordinary writable
	// register afterwards.
	Regs [insts.NumRegs]int64

	// PC is the program counter, stepped in units of 4.
	PC int64

	// Stalled records whether the hazard unit held this core's fetch
	// slot in the most recent cycle.
	Stalled bool

	// ID is the core's unique id.
	ID int
}

// NewCore creates a core with zeroed registers, except register x3 which is
// initialized to the core id.
func NewCore(id int) *Core {
	c := &Core{ID: id}
	c.Regs[3] = int64(id)
	return c
}

// ReadReg reads a register value. RegNone and out-of-range indices read as 0.
func (c *Core) ReadReg(reg uint8) int64 {
	if reg >= insts.NumRegs {
		return 0
	}
	return c.Regs[reg]
}

// WriteReg writes a register value. Writes to RegNone or out-of-range
// indices are ignored.
func (c *Core) WriteReg(reg uint8, value int64) {
	if reg >= insts.NumRegs {
		return
	}
	c.Regs[reg] = value
}

package emu

import "github.com/sarchlab/mcsim/insts"

// Executor applies instruction semantics to a core. It is the sole mutator
// of registers and, at execute time, of the program counter. All effects are
// confined to the core owning the instruction.
type Executor struct{}

// NewExecutor creates a new executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute applies one instruction to its owning core, then advances the
// program counter by 4 unless the instruction set a different target.
// Control-transfer arithmetic operates on the core's live PC, so the caller
// decides how fetch-time PC bookkeeping and execute-time bookkeeping
// compose.
//
// Malformed operand combinations have no register effect; the default +4
// still applies.
func (e *Executor) Execute(inst *insts.Instruction, core *Core) {
	switch inst.Op {
	case insts.OpJAL:
		if inst.Rd != insts.RegNone {
			core.WriteReg(inst.Rd, inst.OriginPC+4)
		}
		core.PC += inst.Imm
		return

	case insts.OpBNE:
		if inst.Rd != insts.RegNone && inst.Rs1 != insts.RegNone {
			if core.ReadReg(inst.Rd) != core.ReadReg(inst.Rs1) {
				core.PC += inst.Imm
			} else {
				core.PC += 4
			}
			return
		}

	case insts.OpADD:
		if inst.Rd != insts.RegNone &&
			inst.Rs1 != insts.RegNone && inst.Rs2 != insts.RegNone {
			core.WriteReg(inst.Rd,
				core.ReadReg(inst.Rs1)+core.ReadReg(inst.Rs2))
		}

	case insts.OpSUB:
		if inst.Rd != insts.RegNone &&
			inst.Rs1 != insts.RegNone && inst.Rs2 != insts.RegNone {
			core.WriteReg(inst.Rd,
				core.ReadReg(inst.Rs1)-core.ReadReg(inst.Rs2))
		}

	case insts.OpSWAP:
		if inst.Rs1 != insts.RegNone && inst.Rs2 != insts.RegNone {
			a := core.ReadReg(inst.Rs1)
			b := core.ReadReg(inst.Rs2)
			core.WriteReg(inst.Rs1, b)
			core.WriteReg(inst.Rs2, a)
		}
	}

	core.PC += 4
}

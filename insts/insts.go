// Package insts provides instruction definitions and text decoding for the
// simulated RISC-style subset.
//
// Programs are plain assembly text, one instruction per line. Each line is an
// opcode mnemonic followed by up to three operand tokens:
//
//	ADD x1 x2 x3
//	JAL x1 0x10
//	BNE x1 x2 8
//
// Decoding never fails: unrecognized mnemonics become OpUnknown no-ops,
// unparsable register tokens become RegNone, and unparsable immediates
// become 0.
package insts

// Op represents an opcode in the simulated subset.
type Op uint8

// Opcodes.
const (
	OpUnknown Op = iota
	OpJAL
	OpBNE
	OpADD
	OpSUB
	OpSWAP
)

// String returns the assembly mnemonic for the opcode.
func (o Op) String() string {
	switch o {
	case OpJAL:
		return "JAL"
	case OpBNE:
		return "BNE"
	case OpADD:
		return "ADD"
	case OpSUB:
		return "SUB"
	case OpSWAP:
		return "SWAP"
	default:
		return "UNKNOWN"
	}
}

// RegNone marks an absent register operand. Operands that fail to parse, and
// operand positions an opcode does not use, carry this sentinel. The hazard
// unit and the executor treat RegNone registers as non-participating.
const RegNone uint8 = 0xFF

// Instruction is a decoded instruction. It is immutable once produced by the
// decoder, with one exception: the forwarding unit may rewrite Rs1/Rs2 on the
// copy resident in a pipeline slot.
type Instruction struct {
	Op  Op    // Operation code
	Rd  uint8 // Destination register, or RegNone
	Rs1 uint8 // First source register, or RegNone
	Rs2 uint8 // Second source register, or RegNone
	Imm int64 // Immediate operand

	// CoreID is the id of the core that fetched this instruction.
	CoreID int

	// OriginPC is the program counter value the instruction was fetched at.
	OriginPC int64
}

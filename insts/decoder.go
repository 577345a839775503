package insts

import (
	"strconv"
	"strings"
)

// NumRegs is the number of general-purpose registers per core.
const NumRegs = 32

// Decoder decodes assembly text lines into instructions.
type Decoder struct{}

// NewDecoder creates a new text decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes one text line into an instruction owned by the given core.
// The line is an opcode mnemonic plus up to three operand tokens. Decode
// never fails; malformed pieces degrade to RegNone operands, zero
// immediates, or OpUnknown.
func (d *Decoder) Decode(line string, coreID int, pc int64) *Instruction {
	inst := &Instruction{
		Op:       OpUnknown,
		Rd:       RegNone,
		Rs1:      RegNone,
		Rs2:      RegNone,
		CoreID:   coreID,
		OriginPC: pc,
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return inst
	}

	opnds := fields[1:]
	operand := func(i int) string {
		if i < len(opnds) {
			return opnds[i]
		}
		return ""
	}

	switch strings.ToUpper(fields[0]) {
	case "JAL":
		inst.Op = OpJAL
		inst.Rd = ParseReg(operand(0))
		inst.Imm = ParseImm(operand(1))
	case "BNE":
		inst.Op = OpBNE
		inst.Rd = ParseReg(operand(0))
		inst.Rs1 = ParseReg(operand(1))
		inst.Imm = ParseImm(operand(2))
	case "ADD":
		inst.Op = OpADD
		inst.Rd = ParseReg(operand(0))
		inst.Rs1 = ParseReg(operand(1))
		inst.Rs2 = ParseReg(operand(2))
	case "SUB":
		inst.Op = OpSUB
		inst.Rd = ParseReg(operand(0))
		inst.Rs1 = ParseReg(operand(1))
		inst.Rs2 = ParseReg(operand(2))
	case "SWAP":
		inst.Op = OpSWAP
		inst.Rd = ParseReg(operand(0))
		inst.Rs1 = ParseReg(operand(1))
		inst.Rs2 = ParseReg(operand(2))
	}

	return inst
}

// ParseReg parses a register token of the form "x" followed by decimal
// digits, yielding an index in [0, NumRegs). Any other token, including an
// out-of-range index, yields RegNone.
func ParseReg(tok string) uint8 {
	if len(tok) < 2 || (tok[0] != 'x' && tok[0] != 'X') {
		return RegNone
	}
	n, err := strconv.ParseUint(tok[1:], 10, 8)
	if err != nil || n >= NumRegs {
		return RegNone
	}
	return uint8(n)
}

// ParseImm parses an immediate token. A 0x/0X prefix selects hexadecimal, a
// 0b/0B prefix selects binary, anything else is decimal with an optional
// sign. A parse failure yields 0.
func ParseImm(tok string) int64 {
	if tok == "" {
		return 0
	}

	body := tok
	neg := false
	switch body[0] {
	case '-':
		neg = true
		body = body[1:]
	case '+':
		body = body[1:]
	}

	base := 10
	if len(body) > 2 {
		switch body[:2] {
		case "0x", "0X":
			base = 16
			body = body[2:]
		case "0b", "0B":
			base = 2
			body = body[2:]
		}
	}

	v, err := strconv.ParseInt(body, base, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

package pipeline

import "github.com/sarchlab/mcsim/insts"

// HazardUnit detects read-after-write hazards between the decode-stage
// instruction and the producers still in flight downstream.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// DetectStall reports whether the instruction resident in the decode slot
// requires the pipeline to hold the fetch→decode promotion this cycle.
//
// The producers are examined in execute, memory, writeback order; the first
// occupied slot whose destination register matches decode's Rs1 or Rs2
// stalls the core. Producers without a destination register (RegNone) never
// participate. An empty decode slot never stalls.
//
// The check deliberately inspects the decode-resident instruction, not the
// one waiting in fetch; it gates the fetch promotion only, and the decode
// instruction itself still advances.
func (h *HazardUnit) DetectStall(decode, execute, memory, writeback *StageSlot) bool {
	if !decode.Valid {
		return false
	}

	d := decode.Inst
	for _, producer := range []*StageSlot{execute, memory, writeback} {
		if !producer.Valid {
			continue
		}
		rd := producer.Inst.Rd
		if rd == insts.RegNone {
			continue
		}
		if d.Rs1 == rd || d.Rs2 == rd {
			return true
		}
	}

	return false
}

// ForwardingUnit rewrites a decode-stage instruction's source-register
// references using producer information from later in-flight instructions.
//
// It forwards register identity, not register value: a matching source field
// is rewritten to the producer's destination register index, and the
// executor still reads registers live out of the core at execute time. On a
// correct-producer match the rewrite is therefore a visible no-op. This is
// the modeled behavior, preserved exactly.
type ForwardingUnit struct{}

// NewForwardingUnit creates a new forwarding unit.
func NewForwardingUnit() *ForwardingUnit {
	return &ForwardingUnit{}
}

// Apply rewrites inst's Rs1/Rs2 from the producers in execute, memory,
// writeback order. Later producers overwrite earlier rewrites.
func (f *ForwardingUnit) Apply(inst *insts.Instruction, execute, memory, writeback *StageSlot) {
	for _, producer := range []*StageSlot{execute, memory, writeback} {
		if !producer.Valid {
			continue
		}
		rd := producer.Inst.Rd
		if rd == insts.RegNone {
			continue
		}
		if inst.Rs1 == rd {
			inst.Rs1 = rd
		}
		if inst.Rs2 == rd {
			inst.Rs2 = rd
		}
	}
}

// Package pipeline provides the per-core 5-stage pipeline and the lockstep
// multi-core cycle scheduler.
package pipeline

import "github.com/sarchlab/mcsim/insts"

// StageSlot is the holding register for one pipeline stage of one core. It
// is either empty or holds exactly one in-flight instruction. The
// remaining-latency counter is meaningful only while the slot serves as an
// execute stage.
type StageSlot struct {
	// Valid indicates the slot holds an instruction.
	Valid bool

	// Inst is the in-flight instruction.
	Inst *insts.Instruction

	// LatencyRemaining counts the execute cycles left before the
	// instruction may leave the execute stage.
	LatencyRemaining uint64
}

// Clear resets the slot to empty.
func (s *StageSlot) Clear() {
	s.Valid = false
	s.Inst = nil
	s.LatencyRemaining = 0
}

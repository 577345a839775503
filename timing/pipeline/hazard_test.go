package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcsim/insts"
	"github.com/sarchlab/mcsim/timing/pipeline"
)

func slotWith(inst *insts.Instruction) pipeline.StageSlot {
	return pipeline.StageSlot{Valid: true, Inst: inst}
}

func emptySlot() pipeline.StageSlot {
	return pipeline.StageSlot{}
}

var _ = Describe("HazardUnit", func() {
	var (
		unit      *pipeline.HazardUnit
		decode    pipeline.StageSlot
		execute   pipeline.StageSlot
		memory    pipeline.StageSlot
		writeback pipeline.StageSlot
	)

	BeforeEach(func() {
		unit = pipeline.NewHazardUnit()
		decode = emptySlot()
		execute = emptySlot()
		memory = emptySlot()
		writeback = emptySlot()
	})

	detect := func() bool {
		return unit.DetectStall(&decode, &execute, &memory, &writeback)
	}

	It("should not stall when decode is empty", func() {
		execute = slotWith(&insts.Instruction{Op: insts.OpADD, Rd: 1})
		Expect(detect()).To(BeFalse())
	})

	It("should stall on an execute-stage producer matching rs1", func() {
		decode = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 4, Rs1: 1, Rs2: 5,
		})
		execute = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 1, Rs1: 2, Rs2: 3,
		})
		Expect(detect()).To(BeTrue())
	})

	It("should stall on a memory-stage producer matching rs2", func() {
		decode = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 4, Rs1: 5, Rs2: 1,
		})
		memory = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 1, Rs1: 2, Rs2: 3,
		})
		Expect(detect()).To(BeTrue())
	})

	It("should stall on a writeback-stage producer", func() {
		decode = slotWith(&insts.Instruction{
			Op: insts.OpSUB, Rd: 4, Rs1: 1, Rs2: 5,
		})
		writeback = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 1, Rs1: 2, Rs2: 3,
		})
		Expect(detect()).To(BeTrue())
	})

	It("should not stall when no producer writes a source register", func() {
		decode = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 4, Rs1: 5, Rs2: 6,
		})
		execute = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 1, Rs1: 2, Rs2: 3,
		})
		Expect(detect()).To(BeFalse())
	})

	It("should skip producers without a destination register", func() {
		decode = slotWith(&insts.Instruction{
			Op: insts.OpADD, Rd: 4, Rs1: insts.RegNone, Rs2: insts.RegNone,
		})
		execute = slotWith(&insts.Instruction{
			Op: insts.OpUnknown,
			Rd: insts.RegNone, Rs1: insts.RegNone, Rs2: insts.RegNone,
		})
		Expect(detect()).To(BeFalse())
	})
})

var _ = Describe("ForwardingUnit", func() {
	var (
		unit      *pipeline.ForwardingUnit
		execute   pipeline.StageSlot
		memory    pipeline.StageSlot
		writeback pipeline.StageSlot
	)

	BeforeEach(func() {
		unit = pipeline.NewForwardingUnit()
		execute = emptySlot()
		memory = emptySlot()
		writeback = emptySlot()
	})

	It("should rewrite a matching source to the producer's destination", func() {
		inst := &insts.Instruction{Op: insts.OpADD, Rd: 4, Rs1: 1, Rs2: 5}
		execute = slotWith(&insts.Instruction{Op: insts.OpADD, Rd: 1})

		unit.Apply(inst, &execute, &memory, &writeback)

		Expect(inst.Rs1).To(Equal(uint8(1)))
		Expect(inst.Rs2).To(Equal(uint8(5)))
	})

	It("should leave non-matching sources alone", func() {
		inst := &insts.Instruction{Op: insts.OpADD, Rd: 4, Rs1: 6, Rs2: 7}
		execute = slotWith(&insts.Instruction{Op: insts.OpADD, Rd: 1})
		memory = slotWith(&insts.Instruction{Op: insts.OpADD, Rd: 2})

		unit.Apply(inst, &execute, &memory, &writeback)

		Expect(inst.Rs1).To(Equal(uint8(6)))
		Expect(inst.Rs2).To(Equal(uint8(7)))
	})

	It("should ignore producers without a destination register", func() {
		inst := &insts.Instruction{
			Op: insts.OpADD, Rd: 4, Rs1: insts.RegNone, Rs2: 5,
		}
		writeback = slotWith(&insts.Instruction{
			Op: insts.OpUnknown, Rd: insts.RegNone,
		})

		unit.Apply(inst, &execute, &memory, &writeback)

		Expect(inst.Rs1).To(Equal(insts.RegNone))
		Expect(inst.Rs2).To(Equal(uint8(5)))
	})
})

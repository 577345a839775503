package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mcsim/emu"
	"github.com/sarchlab/mcsim/insts"
)

var _ = Describe("Core", func() {
	It("should start with x3 holding the core id", func() {
		core := emu.NewCore(2)

		Expect(core.Regs[3]).To(Equal(int64(2)))
		Expect(core.ID).To(Equal(2))
		Expect(core.PC).To(BeZero())
		Expect(core.Stalled).To(BeFalse())
	})

	It("should leave x3 writable like any other register", func() {
		core := emu.NewCore(1)
		core.WriteReg(3, 99)
		Expect(core.Regs[3]).To(Equal(int64(99)))
	})

	It("should ignore reads and writes through the absent-register marker", func() {
		core := emu.NewCore(0)

		core.WriteReg(insts.RegNone, 42)
		Expect(core.ReadReg(insts.RegNone)).To(BeZero())
		for _, v := range core.Regs {
			Expect(v).To(BeZero())
		}
	})
})

var _ = Describe("DataMemory", func() {
	It("should partition the words evenly across cores", func() {
		mem := emu.NewDataMemory(16, 4)

		lo, hi := mem.Partition(0)
		Expect(lo).To(Equal(0))
		Expect(hi).To(Equal(4))

		lo, hi = mem.Partition(3)
		Expect(lo).To(Equal(12))
		Expect(hi).To(Equal(16))
	})

	It("should ignore out-of-range access", func() {
		mem := emu.NewDataMemory(4, 1)

		mem.Write(-1, 7)
		mem.Write(4, 7)
		Expect(mem.Read(-1)).To(BeZero())
		Expect(mem.Read(4)).To(BeZero())
	})

	It("should sort each partition independently", func() {
		mem := emu.NewDataMemory(8, 2)
		mem.Fill(0, []int64{4, 1, 3, 2})
		mem.Fill(4, []int64{9, 7, 8, 6})

		mem.SortPartitions()

		Expect(mem.Values(0, 4)).To(Equal([]int64{1, 2, 3, 4}))
		Expect(mem.Values(4, 8)).To(Equal([]int64{6, 7, 8, 9}))
	})

	It("should not move values across partition boundaries", func() {
		mem := emu.NewDataMemory(4, 2)
		mem.Fill(0, []int64{9, 8, 1, 0})

		mem.SortPartitions()

		Expect(mem.Values(0, 2)).To(Equal([]int64{8, 9}))
		Expect(mem.Values(2, 4)).To(Equal([]int64{0, 1}))
	})
})

package emu

// DataMemory is the flat data memory shared by all cores, partitioned into
// equal contiguous per-core ranges. No opcode in the simulated subset reads
// or writes it during execution; it exists for the post-run sort and dump
// steps, and the partition bookkeeping lives here.
type DataMemory struct {
	words    []int64
	numCores int
}

// NewDataMemory creates a data memory of size words split across numCores
// partitions. Sizes that do not divide evenly leave the remainder words in
// no partition.
func NewDataMemory(size, numCores int) *DataMemory {
	if size < 0 {
		size = 0
	}
	if numCores < 1 {
		numCores = 1
	}
	return &DataMemory{
		words:    make([]int64, size),
		numCores: numCores,
	}
}

// Size returns the total number of words.
func (m *DataMemory) Size() int {
	return len(m.words)
}

// NumCores returns the number of partitions.
func (m *DataMemory) NumCores() int {
	return m.numCores
}

// Partition returns the half-open word range [lo, hi) owned by the core.
func (m *DataMemory) Partition(coreID int) (lo, hi int) {
	part := len(m.words) / m.numCores
	lo = coreID * part
	hi = lo + part
	return lo, hi
}

// Read returns the word at addr, or 0 when out of range.
func (m *DataMemory) Read(addr int) int64 {
	if addr < 0 || addr >= len(m.words) {
		return 0
	}
	return m.words[addr]
}

// Write stores a word at addr. Out-of-range writes are ignored.
func (m *DataMemory) Write(addr int, value int64) {
	if addr < 0 || addr >= len(m.words) {
		return
	}
	m.words[addr] = value
}

// Fill copies values into memory starting at addr, clipped to the memory
// bounds.
func (m *DataMemory) Fill(addr int, values []int64) {
	for i, v := range values {
		m.Write(addr+i, v)
	}
}

// Values returns a copy of the words in [lo, hi).
func (m *DataMemory) Values(lo, hi int) []int64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(m.words) {
		hi = len(m.words)
	}
	if lo >= hi {
		return nil
	}
	out := make([]int64, hi-lo)
	copy(out, m.words[lo:hi])
	return out
}

// SortPartitions sorts each core's partition in place, ascending. It is the
// post-run step and is independent of the pipeline; the quadratic exchange
// sort mirrors what each simulated core would run over its own range.
func (m *DataMemory) SortPartitions() {
	for core := 0; core < m.numCores; core++ {
		lo, hi := m.Partition(core)
		m.sortRange(lo, hi)
	}
}

func (m *DataMemory) sortRange(lo, hi int) {
	for i := lo; i < hi; i++ {
		min := i
		for j := i + 1; j < hi; j++ {
			if m.words[j] < m.words[min] {
				min = j
			}
		}
		m.words[i], m.words[min] = m.words[min], m.words[i]
	}
}

package latency

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/mcsim/insts"
)

// TimingConfig holds per-opcode execute latencies in cycles.
type TimingConfig struct {
	// JALLatency is the execute latency for JAL. Default: 1 cycle.
	JALLatency uint64 `json:"jal_latency"`

	// BNELatency is the execute latency for BNE. Default: 1 cycle.
	BNELatency uint64 `json:"bne_latency"`

	// AddLatency is the execute latency for ADD. Default: 1 cycle.
	AddLatency uint64 `json:"add_latency"`

	// SubLatency is the execute latency for SUB. Default: 1 cycle.
	SubLatency uint64 `json:"sub_latency"`

	// SwapLatency is the execute latency for SWAP. Default: 1 cycle.
	SwapLatency uint64 `json:"swap_latency"`
}

// DefaultTimingConfig returns a TimingConfig with every opcode at one cycle.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		JALLatency:  1,
		BNELatency:  1,
		AddLatency:  1,
		SubLatency:  1,
		SwapLatency: 1,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are valid (> 0).
func (c *TimingConfig) Validate() error {
	if c.JALLatency == 0 {
		return fmt.Errorf("jal_latency must be > 0")
	}
	if c.BNELatency == 0 {
		return fmt.Errorf("bne_latency must be > 0")
	}
	if c.AddLatency == 0 {
		return fmt.Errorf("add_latency must be > 0")
	}
	if c.SubLatency == 0 {
		return fmt.Errorf("sub_latency must be > 0")
	}
	if c.SwapLatency == 0 {
		return fmt.Errorf("swap_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}

// Apply writes the configured latencies into a table.
func (c *TimingConfig) Apply(t *Table) {
	t.cycles[insts.OpJAL] = c.JALLatency
	t.cycles[insts.OpBNE] = c.BNELatency
	t.cycles[insts.OpADD] = c.AddLatency
	t.cycles[insts.OpSUB] = c.SubLatency
	t.cycles[insts.OpSWAP] = c.SwapLatency
}

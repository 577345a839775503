// Package loader reads assembly program text for the simulator.
//
// A program is an ordered sequence of non-blank text lines. The pipeline
// addresses it with word-aligned program counters: the line at index pc/4.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Program is a loaded assembly program.
type Program struct {
	lines []string
}

// Load reads a program from the file at path.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file: %w", err)
	}
	defer f.Close()

	prog, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}
	return prog, nil
}

// Parse reads a program from r, keeping non-blank lines in order. Leading
// and trailing whitespace on each line is dropped.
func Parse(r io.Reader) (*Program, error) {
	prog := &Program{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prog.lines = append(prog.lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// FromLines builds a program directly from text lines, skipping blank ones.
// It is the path tests and embedded programs use.
func FromLines(lines ...string) *Program {
	prog := &Program{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		prog.lines = append(prog.lines, line)
	}
	return prog
}

// At returns the line addressed by the word-aligned program counter pc, and
// whether such a line exists.
func (p *Program) At(pc int64) (string, bool) {
	if pc < 0 {
		return "", false
	}
	idx := pc / 4
	if idx >= int64(len(p.lines)) {
		return "", false
	}
	return p.lines[idx], true
}

// Len returns the number of instruction lines in the program.
func (p *Program) Len() int {
	return len(p.lines)
}

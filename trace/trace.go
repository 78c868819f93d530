// Package trace reads and writes buffer traces: text files listing the
// size and live range of every buffer a program wants planned.
//
// The format is one buffer per line, three whitespace-separated integers:
//
//	# size first_used last_used
//	4096 0 2
//	1024 1 3
//	512  3 3
//
// Blank lines and lines starting with '#' are ignored. Traces are how
// planner inputs are captured from a host runtime and replayed through
// the planviz tool.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sbl8/arenaplan/planner"
)

// Buffer is one recorded buffer requirement.
type Buffer struct {
	Size          int
	FirstTimeUsed int
	LastTimeUsed  int
}

// Read parses a trace from r.
func Read(r io.Reader) ([]Buffer, error) {
	var buffers []Buffer
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		buffer, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", lineNo, err)
		}
		buffers = append(buffers, buffer)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return buffers, nil
}

// Parse parses a trace from an in-memory string.
func Parse(data string) ([]Buffer, error) {
	return Read(strings.NewReader(data))
}

func parseLine(line string) (Buffer, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Buffer{}, fmt.Errorf("expected 3 fields (size first_used last_used), got %d", len(fields))
	}
	values := make([]int, 3)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return Buffer{}, fmt.Errorf("bad integer %q", field)
		}
		values[i] = v
	}
	buffer := Buffer{Size: values[0], FirstTimeUsed: values[1], LastTimeUsed: values[2]}
	if buffer.Size <= 0 {
		return Buffer{}, fmt.Errorf("size must be positive, got %d", buffer.Size)
	}
	if buffer.FirstTimeUsed > buffer.LastTimeUsed {
		return Buffer{}, fmt.Errorf("first_used %d after last_used %d", buffer.FirstTimeUsed, buffer.LastTimeUsed)
	}
	return buffer, nil
}

// Write emits buffers to w in the trace format, one per line.
func Write(w io.Writer, buffers []Buffer) error {
	for _, b := range buffers {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", b.Size, b.FirstTimeUsed, b.LastTimeUsed); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	return nil
}

// Register feeds every buffer to p in trace order, so trace line order
// matches planner buffer indices.
func Register(p planner.MemoryPlanner, buffers []Buffer) error {
	for i, b := range buffers {
		if err := p.AddBuffer(b.Size, b.FirstTimeUsed, b.LastTimeUsed); err != nil {
			return fmt.Errorf("trace: registering buffer %d: %w", i, err)
		}
	}
	return nil
}

// Sizes returns the buffer sizes in trace order.
func Sizes(buffers []Buffer) []int {
	sizes := make([]int, len(buffers))
	for i, b := range buffers {
		sizes[i] = b.Size
	}
	return sizes
}

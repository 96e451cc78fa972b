// Package report summarizes a trace check for machines and humans.
//
// A Collector attaches to a check.Checker as a hook and counts records as
// they are accepted. Summarize combines those counts with the checker's
// final state into a Summary, which is written as YAML.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/rvvicheck/check"
)

// Params mirrors the architectural parameters of a trace.
type Params struct {
	ILen    int `yaml:"ilen"`
	XLen    int `yaml:"xlen"`
	FLen    int `yaml:"flen"`
	VLen    int `yaml:"vlen"`
	NHarts  int `yaml:"nharts"`
	NRetire int `yaml:"nretire"`
}

// Hart holds per-hart retirement figures.
type Hart struct {
	ID      int   `yaml:"id"`
	Retired int64 `yaml:"retired"`
	Traps   int64 `yaml:"traps"`
	// Order is the hart's order counter at the end of the scan.
	Order int64 `yaml:"order"`
}

// Summary describes the outcome of one trace check.
type Summary struct {
	File  string `yaml:"file,omitempty"`
	Valid bool   `yaml:"valid"`
	// Error is the failure message without the line prefix.
	Error     string `yaml:"error,omitempty"`
	ErrorLine int    `yaml:"error_line,omitempty"`

	PhysicalLines int            `yaml:"physical_lines"`
	LogicalLines  int            `yaml:"logical_lines"`
	Records       map[string]int `yaml:"records,omitempty"`

	Params *Params `yaml:"params,omitempty"`
	Harts  []Hart  `yaml:"harts,omitempty"`
}

// Collector is a hook that tallies accepted records.
type Collector struct {
	records map[check.Keyword]int
	retired map[int]int64
	traps   map[int]int64
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		records: make(map[check.Keyword]int),
		retired: make(map[int]int64),
		traps:   make(map[int]int64),
	}
}

// Func implements sim.Hook.
func (c *Collector) Func(ctx sim.HookCtx) {
	if ctx.Pos != check.HookPosRecord {
		return
	}

	rec, ok := ctx.Item.(*check.Record)
	if !ok {
		return
	}

	c.records[rec.Keyword]++
	switch rec.Keyword {
	case check.KeywordRET:
		c.retired[rec.Hart]++
	case check.KeywordTRAP:
		c.retired[rec.Hart]++
		c.traps[rec.Hart]++
	}
}

// Count returns how many records of kind k were accepted.
func (c *Collector) Count(k check.Keyword) int {
	return c.records[k]
}

// Summarize builds the Summary of a finished check. err is the value the
// checker returned.
func (c *Collector) Summarize(file string, checker *check.Checker, err error) *Summary {
	stats := checker.Stats()
	s := &Summary{
		File:          file,
		Valid:         err == nil,
		PhysicalLines: stats.PhysicalLines,
		LogicalLines:  stats.Lines,
	}

	if err != nil {
		var lineErr *check.LineError
		if errors.As(err, &lineErr) {
			s.Error = lineErr.Err.Error()
			s.ErrorLine = lineErr.Line
		} else {
			s.Error = err.Error()
		}
	}

	if len(c.records) > 0 {
		s.Records = make(map[string]int, len(c.records))
		for k, n := range c.records {
			s.Records[k.String()] = n
		}
	}

	state := checker.State()
	if state.HasParams() {
		s.Params = &Params{
			ILen:    state.ILen,
			XLen:    state.XLen,
			FLen:    state.FLen,
			VLen:    state.VLen,
			NHarts:  state.NHarts,
			NRetire: state.NRetire,
		}
		s.Harts = c.harts(state)
	}

	return s
}

func (c *Collector) harts(state *check.State) []Hart {
	harts := make([]Hart, 0, len(state.Order))
	for id, order := range state.Order {
		if order == 0 && c.retired[id] == 0 {
			continue
		}
		harts = append(harts, Hart{
			ID:      id,
			Retired: c.retired[id],
			Traps:   c.traps[id],
			Order:   order,
		})
	}

	return harts
}

// Write encodes s as YAML.
func Write(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	return nil
}

// Save writes s as YAML to path. A path of "-" writes to standard output.
func Save(path string, s *Summary) error {
	if path == "-" {
		return Write(os.Stdout, s)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}

	if err := Write(f, s); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return nil
}

// Load reads a Summary written by Save.
func Load(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}

	s := &Summary{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}

	return s, nil
}

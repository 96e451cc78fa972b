package check

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/rvvicheck/lexer"
)

// HookPosLine marks the point after a logical line has been accepted. The
// hook item is the *lexer.LogicalLine.
var HookPosLine = &sim.HookPos{Name: "RVVI Line"}

// HookPosRecord marks the point after a record has been accepted. The hook
// item is the *Record; the detail is the *lexer.LogicalLine holding it.
var HookPosRecord = &sim.HookPos{Name: "RVVI Record"}

// LineError reports the first failure of a trace together with the
// physical line it was found on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("Error on line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Stats counts what a Checker has accepted.
type Stats struct {
	// PhysicalLines is the number of physical lines read.
	PhysicalLines int
	// Lines is the number of non-empty logical lines accepted.
	Lines int
	// Records is the number of records accepted.
	Records int
}

// Checker validates a whole trace. Hooks attached with AcceptHook observe
// every accepted line and record.
type Checker struct {
	*sim.HookableBase

	state *State
	stats Stats
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithState makes the Checker continue from an existing state instead of
// a fresh one.
func WithState(s *State) CheckerOption {
	return func(c *Checker) {
		c.state = s
	}
}

// WithHooks attaches hooks to the Checker.
func WithHooks(hooks ...sim.Hook) CheckerOption {
	return func(c *Checker) {
		for _, h := range hooks {
			c.AcceptHook(h)
		}
	}
}

// NewChecker creates a Checker.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		HookableBase: sim.NewHookableBase(),
		state:        NewState(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the validator state. After a failed check it reflects the
// partially applied failing line.
func (c *Checker) State() *State {
	return c.state
}

// Stats returns counters for the lines and records accepted so far.
func (c *Checker) Stats() Stats {
	return c.stats
}

// CheckFile opens and validates the trace at path.
func (c *Checker) CheckFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return c.CheckReader(f)
}

// CheckReader validates a trace read from r. It returns nil if every line
// is valid, a *LineError for the first invalid line, or the read error
// that stopped the scan.
func (c *Checker) CheckReader(r io.Reader) error {
	lines := lexer.NewReader(r)

	for {
		line, ok := lines.Next()
		c.stats.PhysicalLines = lines.Line()
		if !ok {
			break
		}

		if err := c.checkLine(&line); err != nil {
			return &LineError{Line: line.Line, Err: err}
		}
	}

	return lines.Err()
}

func (c *Checker) checkLine(line *lexer.LogicalLine) error {
	var visit RecordFunc
	if c.NumHooks() > 0 {
		visit = func(rec *Record) {
			c.stats.Records++
			c.InvokeHook(sim.HookCtx{Pos: HookPosRecord, Item: rec, Detail: line})
		}
	} else {
		visit = func(*Record) { c.stats.Records++ }
	}

	if err := c.state.CheckLine(line.Tokens, visit); err != nil {
		return err
	}

	c.stats.Lines++
	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{Pos: HookPosLine, Item: line})
	}

	return nil
}

// Package check validates RVVI-TEXT trace records.
//
// A State holds the architectural parameters announced by PARAMS and the
// per-hart bookkeeping that later records are checked against. CheckLine
// dispatches the records of one logical line; a Checker drives a whole
// trace through a State.
package check

// MaxHarts bounds NHART so that a corrupt PARAMS record cannot make the
// checker allocate an unbounded order table.
const MaxHarts = 1 << 20

// NumRegisters is the size of the X, F and V register files.
const NumRegisters = 32

// NumCSRs is the size of the CSR address space.
const NumCSRs = 0x1000

// State is the mutable context of one trace scan.
type State struct {
	// ILen is the instruction width in bits. PARAMS requires 32.
	ILen int
	// XLen is the integer register width in bits, 32 or 64.
	XLen int
	// FLen is the floating-point register width in bits. 0 means the
	// trace has no F registers.
	FLen int
	// VLen is the vector register width in bits. 0 means the trace has no
	// V registers.
	VLen int
	// NHarts is the number of hardware threads.
	NHarts int
	// NRetire is the number of retire slots per logical line.
	NRetire int

	// Order holds one retirement counter per hart, indexed by hart id.
	// It is nil until PARAMS has been accepted.
	Order []int64

	// Hart is the hart selected by the last HART record.
	Hart int
	// RetireSlot is the retire slot of the current logical line.
	RetireSlot int64
	// RetireAutoInc makes the next RET or TRAP move to the next slot.
	RetireAutoInc bool
}

// NewState creates a State with no parameters set.
func NewState() *State {
	return &State{}
}

// HasParams reports whether a PARAMS record has been accepted.
func (s *State) HasParams() bool {
	return s.Order != nil
}

// beginLine resets the per-line retire bookkeeping.
func (s *State) beginLine() {
	s.RetireSlot = 0
	s.RetireAutoInc = false
}

// selectHart makes id the current hart and restarts slot numbering.
func (s *State) selectHart(id int) {
	s.Hart = id
	s.RetireSlot = 0
	s.RetireAutoInc = false
}

// advanceRetireSlot applies the pre-increment rule shared by RET and TRAP:
// the first retirement after HART or ISSUE uses the slot they set, each
// later one on the same line uses the next slot.
func (s *State) advanceRetireSlot() {
	if s.RetireAutoInc {
		s.RetireSlot++
	}
	s.RetireAutoInc = true
}

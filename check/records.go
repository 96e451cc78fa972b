package check

import (
	"math"
	"math/big"
	"strconv"

	"github.com/sarchlab/rvvicheck/field"
)

// paramsTrailer is the number of reserved tokens that follow the PARAMS
// key/value pairs.
const paramsTrailer = 7

func checkVendor(_ *State, c *cursor, _ *Record) error {
	if _, err := field.ParseIdentifier(c.next()); err != nil {
		return err
	}
	if _, err := field.ParseInt(c.next()); err != nil {
		return err
	}
	_, err := field.ParseInt(c.next())
	return err
}

func checkVersion(_ *State, c *cursor, _ *Record) error {
	if _, err := field.ParseInt(c.next()); err != nil {
		return err
	}
	_, err := field.ParseInt(c.next())
	return err
}

func checkParams(s *State, c *cursor, _ *Record) error {
	count, err := field.ParseInt(c.next())
	if err != nil {
		return err
	}
	if count < 0 {
		return field.Errorf(field.KindRange, "PARAMS count must be non-negative, got %d.", count)
	}

	for i := int64(0); i < count; i++ {
		if c.done() {
			return field.Errorf(field.KindArity,
				"Not enough tokens for PARAMS: expected %d key/value pairs, got %d.", count, i)
		}

		key, err := field.ParseIdentifier(c.next())
		if err != nil {
			return err
		}

		if c.done() {
			return field.Errorf(field.KindArity, "Not enough tokens for PARAMS key '%s'.", key)
		}

		value, err := field.ParseInt(c.next())
		if err != nil {
			return err
		}

		if err := s.setParam(key, value); err != nil {
			return err
		}
	}

	if err := s.validateParams(); err != nil {
		return err
	}

	s.Order = make([]int64, s.NHarts)
	c.skip(paramsTrailer)

	return nil
}

func (s *State) setParam(key string, value int64) error {
	if value < math.MinInt || value > math.MaxInt {
		return field.Errorf(field.KindRange, "PARAMS value %d for '%s' is out of range.", value, key)
	}

	v := int(value)
	switch key {
	case "ILEN":
		s.ILen = v
	case "XLEN":
		s.XLen = v
	case "FLEN":
		s.FLen = v
	case "VLEN":
		s.VLen = v
	case "NHART":
		s.NHarts = v
	case "RETIRE":
		s.NRetire = v
	default:
		return field.Errorf(field.KindFormat, "Unknown PARAMS key '%s' encountered.", key)
	}

	return nil
}

func (s *State) validateParams() error {
	if s.ILen != 32 {
		return field.Errorf(field.KindRange, "ILEN must be 32, got %d.", s.ILen)
	}
	if s.XLen != 32 && s.XLen != 64 {
		return field.Errorf(field.KindRange, "XLEN must be 32 or 64, got %d.", s.XLen)
	}
	switch s.FLen {
	case 0, 32, 64, 128:
	default:
		return field.Errorf(field.KindRange, "FLEN must be 0, 32, 64, or 128 got %d.", s.FLen)
	}
	if s.VLen < 0 {
		return field.Errorf(field.KindRange, "VLEN must be non-negative, got %d.", s.VLen)
	}
	if s.NHarts <= 0 {
		return field.Errorf(field.KindRange, "NHARTS must be a positive integer, got %d.", s.NHarts)
	}
	if s.NHarts > MaxHarts {
		return field.Errorf(field.KindRange, "NHARTS must not exceed %d, got %d.", MaxHarts, s.NHarts)
	}
	if s.NRetire <= 0 {
		return field.Errorf(field.KindRange, "NRETIRE must be a positive integer, got %d.", s.NRetire)
	}
	return nil
}

func checkHart(s *State, c *cursor, _ *Record) error {
	id, err := field.ParseInt(c.next())
	if err != nil {
		return err
	}
	if id < 0 {
		return field.Errorf(field.KindState, "HART ID %d is negative.", id)
	}
	if id >= int64(s.NHarts) {
		return field.Errorf(field.KindState, "HART ID %d exceeds maximum HARTS (%d).", id, s.NHarts)
	}

	s.selectHart(int(id))
	return nil
}

func checkIssue(s *State, c *cursor, _ *Record) error {
	slot, err := field.ParseInt(c.next())
	if err != nil {
		return err
	}
	if slot < 0 {
		return field.Errorf(field.KindRange, "ISSUE slot %d is negative.", slot)
	}

	s.RetireSlot = slot
	s.RetireAutoInc = false
	return nil
}

func checkOrder(s *State, c *cursor, _ *Record) error {
	order, err := field.ParseInt(c.next())
	if err != nil {
		return err
	}
	if err := s.requireHartOrder(); err != nil {
		return err
	}

	// TODO: reject ORDER values that move a hart's counter backwards.
	s.Order[s.Hart] = order
	return nil
}

func (s *State) requireHartOrder() error {
	if s.Hart >= len(s.Order) {
		return field.Errorf(field.KindState, "HART ID %d exceeds maximum HARTS (%d).", s.Hart, s.NHarts)
	}
	return nil
}

// checkRetire validates RET and TRAP, which share their layout and
// bookkeeping.
func checkRetire(s *State, c *cursor, rec *Record) error {
	s.advanceRetireSlot()
	if s.RetireSlot >= int64(s.NRetire) {
		return field.Errorf(field.KindState, "Exceeded maximum retire slots (%d).", s.NRetire)
	}

	pc, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	if err := field.CheckWidth(pc, s.XLen, "PC", "XLEN"); err != nil {
		return err
	}

	inst, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	if err := field.CheckWidth(inst, s.ILen, "Instruction binary", "ILEN"); err != nil {
		return err
	}

	if err := s.requireHartOrder(); err != nil {
		return err
	}
	s.Order[s.Hart]++
	rec.Slot = s.RetireSlot

	return nil
}

func parseRegIndex(token, file string) (int64, error) {
	index, err := field.ParseInt(token)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= NumRegisters {
		return 0, field.Errorf(field.KindRange,
			"%s register index %d out of range (must be less than %d).", file, index, NumRegisters)
	}
	return index, nil
}

func checkX(s *State, c *cursor, _ *Record) error {
	index, err := parseRegIndex(c.next(), "X")
	if err != nil {
		return err
	}
	value, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	return field.CheckWidth(value, s.XLen, regName("X", index), "XLEN")
}

func checkF(s *State, c *cursor, _ *Record) error {
	if s.FLen == 0 {
		return field.Errorf(field.KindState, "FLEN is 0, but F register update encountered.")
	}

	index, err := parseRegIndex(c.next(), "F")
	if err != nil {
		return err
	}
	value, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	return field.CheckWidth(value, s.FLen, regName("F", index), "FLEN")
}

func checkV(s *State, c *cursor, _ *Record) error {
	if s.VLen == 0 {
		return field.Errorf(field.KindState, "VLEN is 0, but V register update encountered.")
	}

	index, err := parseRegIndex(c.next(), "Vector")
	if err != nil {
		return err
	}
	value, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	return field.CheckWidth(value, s.VLen, regName("V", index), "VLEN")
}

func regName(file string, index int64) string {
	return file + strconv.FormatInt(index, 10) + " register"
}

func checkC(s *State, c *cursor, _ *Record) error {
	index, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	if index.Cmp(big.NewInt(NumCSRs)) >= 0 {
		return field.Errorf(field.KindRange,
			"CSR index %s out of range (must be less than 0x1000).", field.FormatHex(index))
	}

	value, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	return field.CheckWidth(value, s.XLen, "CSR "+field.FormatHex(index)+" register", "XLEN")
}

func checkNet(_ *State, c *cursor, _ *Record) error {
	if _, err := field.ParseIdentifier(c.next()); err != nil {
		return err
	}
	_, err := field.ParseHex(c.next())
	return err
}

// oneOf reports whether v equals one of the allowed small values.
func oneOf(v *big.Int, allowed ...int64) bool {
	if !v.IsInt64() {
		return false
	}
	for _, a := range allowed {
		if v.Int64() == a {
			return true
		}
	}
	return false
}

func checkMode(_ *State, c *cursor, _ *Record) error {
	mode, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	if !oneOf(mode, 0, 1, 3) {
		return field.Errorf(field.KindRange, "MODE value %d is invalid (must be 0, 1, or 3).", mode)
	}
	return nil
}

func checkDM(_ *State, c *cursor, _ *Record) error {
	enable, err := field.ParseHex(c.next())
	if err != nil {
		return err
	}
	if !oneOf(enable, 0, 1) {
		return field.Errorf(field.KindRange, "DM ENABLE value %d is invalid (must be 0 or 1).", enable)
	}
	return nil
}

func checkMeta(_ *State, c *cursor, _ *Record) error {
	count, err := field.ParseInt(c.next())
	if err != nil {
		return err
	}
	if count < 0 {
		return field.Errorf(field.KindRange, "META count must be non-negative, got %d.", count)
	}
	if count > int64(c.remaining()) {
		count = int64(c.remaining())
	}

	c.skip(int(count))
	return nil
}

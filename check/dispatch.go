package check

import (
	"github.com/sarchlab/rvvicheck/field"
)

// Keyword identifies a record kind.
type Keyword uint8

// Record keywords.
const (
	KeywordVENDOR Keyword = iota
	KeywordVERSION
	KeywordPARAMS
	KeywordHART
	KeywordISSUE
	KeywordORDER
	KeywordRET
	KeywordTRAP
	KeywordX
	KeywordF
	KeywordV
	KeywordC
	KeywordNET
	KeywordMODE
	KeywordDM
	KeywordMETA

	numKeywords
)

// recordFunc validates the fields of one record, consuming them from the
// cursor, and applies the record's effect on the state.
type recordFunc func(s *State, c *cursor, rec *Record) error

type recordDef struct {
	name string
	// arity is the minimum number of tokens after the keyword.
	arity int
	check recordFunc
}

var recordTable [numKeywords]recordDef

var keywordIndex map[string]Keyword

func init() {
	recordTable = [numKeywords]recordDef{
		KeywordVENDOR:  {"VENDOR", 3, checkVendor},
		KeywordVERSION: {"VERSION", 2, checkVersion},
		KeywordPARAMS:  {"PARAMS", 6, checkParams},
		KeywordHART:    {"HART", 1, checkHart},
		KeywordISSUE:   {"ISSUE", 1, checkIssue},
		KeywordORDER:   {"ORDER", 1, checkOrder},
		KeywordRET:     {"RET", 2, checkRetire},
		KeywordTRAP:    {"TRAP", 2, checkRetire},
		KeywordX:       {"X", 2, checkX},
		KeywordF:       {"F", 2, checkF},
		KeywordV:       {"V", 2, checkV},
		KeywordC:       {"C", 2, checkC},
		KeywordNET:     {"NET", 2, checkNet},
		KeywordMODE:    {"MODE", 1, checkMode},
		KeywordDM:      {"DM", 1, checkDM},
		KeywordMETA:    {"META", 1, checkMeta},
	}

	keywordIndex = make(map[string]Keyword, numKeywords)
	for k := Keyword(0); k < numKeywords; k++ {
		keywordIndex[recordTable[k].name] = k
	}
}

// String returns the keyword as it appears in a trace.
func (k Keyword) String() string {
	if k < numKeywords {
		return recordTable[k].name
	}
	return "UNKNOWN"
}

// Arity returns the minimum number of tokens that follow the keyword.
func (k Keyword) Arity() int {
	if k < numKeywords {
		return recordTable[k].arity
	}
	return 0
}

// LookupKeyword maps a token to its record keyword. Keywords are case
// sensitive.
func LookupKeyword(token string) (Keyword, bool) {
	k, ok := keywordIndex[token]
	return k, ok
}

// Keywords returns all record keywords in table order.
func Keywords() []Keyword {
	ks := make([]Keyword, 0, numKeywords)
	for k := Keyword(0); k < numKeywords; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Record describes one record accepted by CheckLine.
type Record struct {
	Keyword Keyword
	// Tokens holds the keyword followed by every token the record
	// consumed, including skipped payload.
	Tokens []string
	// Hart is the hart selected when the record was checked.
	Hart int
	// Slot is the retire slot a RET or TRAP occupied. It is -1 for other
	// records.
	Slot int64
}

// RecordFunc receives each record after it has been accepted.
type RecordFunc func(rec *Record)

// cursor walks the tokens of one logical line.
type cursor struct {
	tokens []string
	pos    int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.tokens)
}

func (c *cursor) remaining() int {
	return len(c.tokens) - c.pos
}

// next returns the next token. Callers check remaining first.
func (c *cursor) next() string {
	t := c.tokens[c.pos]
	c.pos++
	return t
}

// skip advances past up to n tokens.
func (c *cursor) skip(n int) {
	if n > c.remaining() {
		n = c.remaining()
	}
	c.pos += n
}

// CheckLine validates one logical line, which may hold several records.
// It stops at the first failing record. visit, when not nil, is called for
// every accepted record.
func (s *State) CheckLine(tokens []string, visit RecordFunc) error {
	s.beginLine()

	c := &cursor{tokens: tokens}
	for !c.done() {
		start := c.pos
		key := c.next()

		k, ok := LookupKeyword(key)
		if !ok {
			return field.Errorf(field.KindUnknownKeyword, "Unknown token '%s' encountered.", key)
		}

		def := &recordTable[k]
		if c.remaining() < def.arity {
			return field.Errorf(field.KindArity,
				"Not enough tokens for '%s'. Expected %d.", key, def.arity+1)
		}

		rec := Record{Keyword: k, Slot: -1}
		if err := def.check(s, c, &rec); err != nil {
			return err
		}

		if visit != nil {
			rec.Tokens = tokens[start:c.pos]
			rec.Hart = s.Hart
			visit(&rec)
		}
	}

	return nil
}

// Package lexer turns the physical lines of an RVVI-TEXT trace into
// logical lines of tokens.
//
// Tokens are separated by whitespace. A token starting with a single quote
// opens a comment and a token ending with one closes it; comment tokens are
// dropped. A physical line whose last remaining token is a lone backslash
// continues on the next physical line.
package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Continuation is the token that joins the next physical line.
const Continuation = `\`

// Split breaks a physical line into whitespace-separated tokens.
func Split(line string) []string {
	return strings.Fields(line)
}

// StripComments removes quoted comment spans from tokens. Comment state
// does not carry over between calls.
func StripComments(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	inComment := false

	for _, t := range tokens {
		if strings.HasPrefix(t, "'") {
			inComment = true
		}
		if !inComment {
			out = append(out, t)
		}
		if strings.HasSuffix(t, "'") {
			inComment = false
		}
	}

	return out
}

// Tokenize splits a physical line and strips its comments.
func Tokenize(line string) []string {
	return StripComments(Split(line))
}

// LogicalLine is one unit of record dispatch.
type LogicalLine struct {
	// Tokens holds the record tokens with comments and continuation
	// markers removed. It is never empty.
	Tokens []string
	// FirstLine is the 1-based physical line the logical line starts on.
	FirstLine int
	// Line is the 1-based physical line the logical line ends on. Errors
	// are reported against this line.
	Line int
}

// Reader assembles logical lines from a stream of physical lines.
type Reader struct {
	src  *bufio.Reader
	line int
	err  error
	done bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// Line returns the number of physical lines consumed so far.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first read error other than io.EOF.
func (r *Reader) Err() error {
	return r.err
}

// Next returns the next non-empty logical line. It returns false at end of
// input or on a read error; check Err to tell them apart. A logical line
// still pending a continuation at end of input is returned as is.
func (r *Reader) Next() (LogicalLine, bool) {
	var pending []string
	start := 0

	for {
		raw, ok := r.readPhysical()
		if !ok {
			if len(pending) > 0 && r.err == nil {
				return LogicalLine{Tokens: pending, FirstLine: start, Line: r.line}, true
			}
			return LogicalLine{}, false
		}

		if len(pending) == 0 {
			start = r.line
		}
		pending = append(pending, Tokenize(raw)...)

		if len(pending) == 0 {
			continue
		}

		if pending[len(pending)-1] == Continuation {
			pending = pending[:len(pending)-1]
			continue
		}

		return LogicalLine{Tokens: pending, FirstLine: start, Line: r.line}, true
	}
}

func (r *Reader) readPhysical() (string, bool) {
	if r.done {
		return "", false
	}

	s, err := r.src.ReadString('\n')
	if err != nil {
		r.done = true
		if !errors.Is(err, io.EOF) {
			r.err = fmt.Errorf("failed to read trace line %d: %w", r.line+1, err)
			return "", false
		}
		if s == "" {
			return "", false
		}
	}

	r.line++
	return s, true
}

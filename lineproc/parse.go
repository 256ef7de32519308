// Package lineproc - text line grammar.
//
//	line     = capacity ":" { item }
//	capacity = digit { digit }                       (value > 0)
//	item     = "(" int "," decimal "," currency int ")"
//	decimal  = digit { digit } [ "." digit { digit } ]
//	currency = "€"
//
// Whitespace is free around ":" and separates items. A bad capacity is
// ErrMalformedCapacity; any bad item token is ErrMalformedItem.

package lineproc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/packer/selector"
)

// CurrencyMarker precedes every item cost.
const CurrencyMarker = '€'

// ParseLine parses one text line into an Instance.
func ParseLine(line string) (selector.Instance, error) {
	head, tail, found := strings.Cut(line, ":")
	if !found {
		return selector.Instance{}, fmt.Errorf("%w: missing ':' separator", ErrMalformedCapacity)
	}
	capacity, err := parseCapacity(strings.TrimSpace(head))
	if err != nil {
		return selector.Instance{}, err
	}

	tokens := strings.Fields(tail)
	items := make([]selector.Item, 0, len(tokens))
	for _, tok := range tokens {
		it, err := ParseItem(tok)
		if err != nil {
			return selector.Instance{}, err
		}
		items = append(items, it)
	}

	return selector.Instance{Capacity: capacity, Items: items}, nil
}

// parseCapacity accepts a positive decimal integer.
func parseCapacity(s string) (float64, error) {
	if s == "" || !isDigits(s) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCapacity, s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCapacity, s)
	}

	return float64(v), nil
}

// ParseItem parses one "(<id>,<weight>,€<cost>)" token.
func ParseItem(tok string) (selector.Item, error) {
	sc := scanner{src: tok}
	bad := func() (selector.Item, error) {
		return selector.Item{}, fmt.Errorf("%w: %q", ErrMalformedItem, tok)
	}

	if !sc.accept('(') {
		return bad()
	}
	idText := sc.digits()
	if idText == "" || !sc.accept(',') {
		return bad()
	}
	weightText := sc.decimal()
	if weightText == "" || !sc.accept(',') || !sc.accept(CurrencyMarker) {
		return bad()
	}
	costText := sc.digits()
	if costText == "" || !sc.accept(')') || !sc.done() {
		return bad()
	}

	id, err := strconv.Atoi(idText)
	if err != nil {
		return bad()
	}
	weight, err := strconv.ParseFloat(weightText, 64)
	if err != nil {
		return bad()
	}
	cost, err := strconv.Atoi(costText)
	if err != nil {
		return bad()
	}

	return selector.Item{ID: id, Weight: weight, Cost: cost}, nil
}

// scanner is a single-token cursor.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos == len(s.src) }

// accept consumes r if it is next.
func (s *scanner) accept(r rune) bool {
	if s.done() {
		return false
	}
	got, size := utf8.DecodeRuneInString(s.src[s.pos:])
	if got != r {
		return false
	}
	s.pos += size

	return true
}

// digits consumes a run of ASCII digits.
func (s *scanner) digits() string {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}

	return s.src[start:s.pos]
}

// decimal consumes digits with an optional fractional part; a dot must be
// followed by at least one digit.
func (s *scanner) decimal() string {
	start := s.pos
	if s.digits() == "" {
		return ""
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' {
		mark := s.pos
		s.pos++
		if s.digits() == "" {
			s.pos = mark
			return ""
		}
	}

	return s.src[start:s.pos]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}

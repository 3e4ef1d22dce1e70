package lang

import "unicode"

// scanner is a rune-level cursor over source text with position tracking and
// backtracking marks. The parser drives it directly; interpolated strings
// make a separate token stream more trouble than it is worth.
type scanner struct {
	src   []rune
	input string // original text, kept for error snippets
	pos   int
	line  int
	col   int
}

// scanPos is a restorable scanner position.
type scanPos struct {
	pos  int
	line int
	col  int
}

func newScanner(input string) *scanner {
	return &scanner{
		src:   []rune(input),
		input: input,
		line:  1,
		col:   1,
	}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

// peek returns the current rune without advancing, or 0 at end of input.
func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	return s.src[s.pos]
}

// peekAt returns the rune at the given offset from the cursor, or 0 past the
// end of input.
func (s *scanner) peekAt(offset int) rune {
	if s.pos+offset >= len(s.src) {
		return 0
	}

	return s.src[s.pos+offset]
}

// next consumes and returns the current rune, updating line and column.
func (s *scanner) next() rune {
	r := s.src[s.pos]
	s.pos++

	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return r
}

func (s *scanner) mark() scanPos {
	return scanPos{pos: s.pos, line: s.line, col: s.col}
}

func (s *scanner) restore(p scanPos) {
	s.pos = p.pos
	s.line = p.line
	s.col = p.col
}

// hasPrefix reports whether the input at the cursor starts with str.
func (s *scanner) hasPrefix(str string) bool {
	i := 0
	for _, r := range str {
		if s.peekAt(i) != r {
			return false
		}

		i++
	}

	return true
}

// consume advances past str when the input at the cursor starts with it.
func (s *scanner) consume(str string) bool {
	if !s.hasPrefix(str) {
		return false
	}

	for range str {
		s.next()
	}

	return true
}

// skipSpace advances past whitespace and '#' line comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		switch r := s.peek(); {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			s.next()

		case r == '#':
			for !s.eof() && s.peek() != '\n' {
				s.next()
			}

		default:
			return
		}
	}
}

// isWordRune reports whether r may appear in a bare identifier.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '-' || r == '_'
}

// word consumes and returns the maximal identifier-shaped run at the cursor,
// which may be empty.
func (s *scanner) word() string {
	start := s.pos
	for !s.eof() && isWordRune(s.peek()) {
		s.next()
	}

	return string(s.src[start:s.pos])
}

// peekWord returns the identifier-shaped run at the cursor without advancing.
func (s *scanner) peekWord() string {
	i := 0
	for isWordRune(s.peekAt(i)) && s.peekAt(i) != 0 {
		i++
	}

	return string(s.src[s.pos : s.pos+i])
}

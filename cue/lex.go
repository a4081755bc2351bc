package cue

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenType int

const (
	typeUnknown tokenType = iota
	typeInt
	typeFloat
	typeIdentifier
	typeString
	typeQuote
	typeComma
	typeColon
	typeSlash
	typeAsterisk
	typeSemicolon
	typeEOF
)

const eof = -1

var punctuation = map[rune]tokenType{
	'\'': typeQuote,
	',':  typeComma,
	':':  typeColon,
	'/':  typeSlash,
	'*':  typeAsterisk,
	';':  typeSemicolon,
}

type token struct {
	typ  tokenType
	pos  int
	text string
}

// lex splits input into tokens, ending with an EOF token.
func lex(input string) ([]token, error) {
	s := scanner{src: input}
	var tokens []token
	for {
		t, err := s.scan()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, t)
		if t.typ == typeEOF {
			return tokens, nil
		}
	}
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) peekAt(offset int) rune {
	if offset >= len(s.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.src[offset:])
	return r
}

func (s *scanner) peek() rune { return s.peekAt(s.pos) }

func (s *scanner) advance() rune {
	if s.pos >= len(s.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += w
	return r
}

func (s *scanner) emit(typ tokenType, start int) token {
	return token{typ: typ, pos: start, text: s.src[start:s.pos]}
}

func (s *scanner) scan() (token, error) {
	for isSpace(s.peek()) {
		s.advance()
	}
	start := s.pos
	r := s.peek()
	switch {
	case r == eof:
		return s.emit(typeEOF, start), nil
	case unicode.IsLetter(r):
		return s.identifier(start)
	case r == '"':
		return s.quoted(start)
	case startsNumber(s.src[start:]):
		return s.number(start)
	}
	if typ, ok := punctuation[r]; ok {
		s.advance()
		return s.emit(typ, start), nil
	}
	return token{}, unexpectedChar(r, start)
}

func (s *scanner) identifier(start int) (token, error) {
	for r := s.peek(); unicode.IsLetter(r) || isDigit(r) || r == '_' || r == '-'; r = s.peek() {
		s.advance()
	}
	if r := s.peek(); !isTerminator(r) {
		return token{}, unexpectedChar(r, s.pos)
	}
	return s.emit(typeIdentifier, start), nil
}

// quoted reads a double quoted string. There are no escape sequences.
func (s *scanner) quoted(start int) (token, error) {
	s.advance()
	for {
		switch s.advance() {
		case '"':
			return s.emit(typeString, start), nil
		case eof:
			return token{}, fmt.Errorf("unterminated string starting at position %d", start)
		}
	}
}

// number reads an optionally negative integer or decimal, e.g. 1, -2, 0.5,
// .5 or 1.
func (s *scanner) number(start int) (token, error) {
	if s.peek() == '-' {
		s.advance()
	}
	s.digits()
	typ := typeInt
	if s.peek() == '.' {
		s.advance()
		s.digits()
		typ = typeFloat
	}
	switch r := s.peek(); {
	case isTerminator(r), r == '/', r == ':', r == ',':
		return s.emit(typ, start), nil
	default:
		return token{}, unexpectedChar(r, s.pos)
	}
}

func (s *scanner) digits() {
	for isDigit(s.peek()) {
		s.advance()
	}
}

// startsNumber reports whether src begins with a digit, or with '-' or '.'
// leading to one.
func startsNumber(src string) bool {
	if len(src) > 0 && src[0] == '-' {
		src = src[1:]
	}
	if len(src) > 0 && src[0] == '.' {
		src = src[1:]
	}
	return len(src) > 0 && isDigit(rune(src[0]))
}

func unexpectedChar(r rune, pos int) error {
	if r == eof {
		return fmt.Errorf("unexpected end of input")
	}
	return fmt.Errorf("unexpected character %#U at position %d", r, pos)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// isTerminator reports whether r may follow an identifier or a number.
func isTerminator(r rune) bool {
	return isSpace(r) || r == ';' || r == eof
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

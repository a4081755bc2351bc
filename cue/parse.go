package cue

import (
	"fmt"
	"strconv"
)

type Node interface {
	isNode()
}

func (Identifier) isNode() {}
func (Int) isNode()        {}
func (Float) isNode()      {}
func (String) isNode()     {}
func (MatchExpr) isNode()  {}

// Command is a single statement: a name followed by arguments. Several
// commands can be given on one line separated by semicolons.
type Command struct {
	Name Identifier
	Args []Node
}

type Identifier string
type Int int
type Float float64
type String string

// MatchExpr selects steps of a bar, e.g. '*/2 for every second eighth note.
type MatchExpr struct {
	matchers []matchItem
}

func Parse(input string) ([]Command, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := parser{tokens: tokens}

	var cmds []Command
	for {
		switch p.peek().typ {
		case typeEOF:
			return cmds, nil
		case typeSemicolon:
			p.next()
			continue
		}
		cmd, err := p.command()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
}

// parser reads tokens with one token of lookahead. The token list always
// ends with EOF, which is never consumed.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.typ != typeEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, unexpected(t)
	}
	return t, nil
}

func endOfCommand(t token) bool {
	return t.typ == typeEOF || t.typ == typeSemicolon
}

func (p *parser) command() (Command, error) {
	name, err := p.expect(typeIdentifier)
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Name: Identifier(name.text)}
	for !endOfCommand(p.peek()) {
		arg, err := p.arg()
		if err != nil {
			return cmd, err
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

func (p *parser) arg() (Node, error) {
	t := p.next()
	switch t.typ {
	case typeIdentifier:
		return Identifier(t.text), nil
	case typeString:
		return String(t.text[1 : len(t.text)-1]), nil
	case typeInt:
		n, err := strconv.Atoi(t.text)
		return Int(n), err
	case typeFloat:
		f, err := strconv.ParseFloat(t.text, 64)
		return Float(f), err
	case typeQuote:
		return p.matchExpr(t)
	default:
		return nil, unexpected(t)
	}
}

// matchExpr parses matchers separated by slashes. Each slash moves to the
// next finer note value, so '*//1 skips a level.
func (p *parser) matchExpr(quote token) (MatchExpr, error) {
	var expr MatchExpr
	if endOfCommand(p.peek()) {
		return expr, fmt.Errorf("empty match expression at position %d", quote.pos)
	}
	level := 0
	for {
		m, err := p.matcher()
		if err != nil {
			return expr, err
		}
		expr.matchers = append(expr.matchers, matchItem{level: level, matcher: m})

		if endOfCommand(p.peek()) {
			return expr, nil
		}
		if _, err := p.expect(typeSlash); err != nil {
			return expr, err
		}
		level++
		for p.peek().typ == typeSlash {
			p.next()
			level++
		}
		if endOfCommand(p.peek()) {
			return expr, fmt.Errorf("match expression ends with a slash")
		}
	}
}

// matcher parses *, a list like 1,3 or a range like 2:4.
func (p *parser) matcher() (matcher, error) {
	t := p.next()
	switch t.typ {
	case typeAsterisk:
		return matchAll, nil
	case typeInt:
	default:
		return nil, unexpected(t)
	}

	first, err := strconv.Atoi(t.text)
	if err != nil {
		return nil, err
	}
	if p.peek().typ == typeColon {
		p.next()
		end, err := p.integer()
		if err != nil {
			return nil, err
		}
		return rangeMatch{start: first, end: end}, nil
	}
	list := listMatch{first}
	for p.peek().typ == typeComma {
		p.next()
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}

func (p *parser) integer() (int, error) {
	t, err := p.expect(typeInt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(t.text)
}

func unexpected(t token) error {
	if t.typ == typeEOF {
		return fmt.Errorf("unexpected end of input")
	}
	return fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}

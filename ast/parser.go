// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"github.com/open-policy-agent/tiny/ast/internal/tokens"
)

// Parser builds statements from a token sequence by recursive descent with
// one token of lookahead. The cursor only moves forward and never moves past
// the terminating EOF token.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser returns a parser over toks. If toks does not end with an EOF
// token one is appended.
func NewParser(toks []Token) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Type != tokens.EOF {
		toks = append(toks[:n:n], Token{Type: tokens.EOF, Lexeme: eofLexeme})
	}
	return &Parser{toks: toks}
}

// Current returns the token under the cursor.
func (p *Parser) Current() Token {
	return p.toks[p.pos]
}

// Advance moves the cursor to the next token unless it is on EOF.
func (p *Parser) Advance() {
	if p.toks[p.pos].Type != tokens.EOF {
		p.pos++
	}
}

// AtEOF reports whether the cursor is on the terminating EOF token.
func (p *Parser) AtEOF() bool {
	return p.Current().Type == tokens.EOF
}

// ParseStatement skips leading newlines and parses exactly one statement.
// Callers must not invoke it when only EOF remains; doing so yields a parse
// error for the EOF token.
func (p *Parser) ParseStatement() (Statement, error) {

	for p.Current().Type == tokens.Newline {
		p.Advance()
	}

	switch p.Current().Type {
	case tokens.Ident:
		return p.parseAssign()
	case tokens.Print:
		return p.parsePrint()
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseAssign() (*Assign, error) {

	tok := p.Current()
	if tok.Type != tokens.Ident {
		return nil, p.errorf(tok.Location, "expected identifier")
	}
	p.Advance()

	if !p.match(tokens.Equals) {
		return nil, p.errorf(p.Current().Location, "expected '=' after identifier")
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Assign{Name: tok.Lexeme, Value: value, Location: tok.Location}, nil
}

func (p *Parser) parsePrint() (*Print, error) {

	loc := p.Current().Location
	if !p.match(tokens.Print) {
		return nil, p.errorf(loc, "expected 'print'")
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Print{Expr: expr, Location: loc}, nil
}

func (p *Parser) parseExpr() (Expr, error) {

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		loc := p.Current().Location
		if !p.match(tokens.Plus) {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Add{Left: left, Right: right, Location: loc}
	}
}

func (p *Parser) parseTerm() (Expr, error) {

	tok := p.Current()

	switch tok.Type {
	case tokens.Number:
		p.Advance()
		return &Number{Value: tok.Value, Location: tok.Location}, nil
	case tokens.Ident:
		p.Advance()
		return &Var{Name: tok.Lexeme, Location: tok.Location}, nil
	}

	return nil, p.unexpected()
}

func (p *Parser) match(t TokenType) bool {
	if p.Current().Type == t {
		p.Advance()
		return true
	}
	return false
}

func (p *Parser) unexpected() error {
	tok := p.Current()
	return p.errorf(tok.Location, "unexpected token: %v", tok)
}

func (*Parser) errorf(loc *Location, f string, a ...any) error {
	return Errors{NewError(ParseErr, loc, f, a...)}
}

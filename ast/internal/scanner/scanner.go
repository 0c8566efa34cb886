// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package scanner splits tiny source text into raw lexemes.
package scanner

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/open-policy-agent/tiny/ast/internal/tokens"
)

var printKeyword = []byte("print")

// Scanner is used to tokenize an input stream of tiny source text.
type Scanner struct {
	bs     []byte
	offset int
	row    int
	col    int
}

// Error represents a scanner error.
type Error struct {
	Pos     Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Row, e.Pos.Col, e.Message)
}

// Position represents a point in the scanned source code.
type Position struct {
	Offset int // start offset in bytes
	End    int // end offset in bytes
	Row    int // line number computed in bytes
	Col    int // column number computed in bytes
}

// New returns an initialized scanner that will scan
// through the source code provided by the io.Reader.
func New(r io.Reader) (*Scanner, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBytes(bs), nil
}

// NewBytes returns a scanner over bs. The slice is not copied.
func NewBytes(bs []byte) *Scanner {
	return &Scanner{
		bs:  bs,
		row: 1,
		col: 1,
	}
}

// Scan will increment the scanners position in the source
// code until the next token is found. The token, starting position
// of the token, string literal, and any errors encountered are
// returned. A token is always returned, the caller must check for
// any errors before using the other values.
func (s *Scanner) Scan() (tokens.Token, Position, string, []Error) {

	s.skipWhitespace()

	pos := Position{Offset: s.offset, Row: s.row, Col: s.col}

	if s.offset >= len(s.bs) {
		pos.End = s.offset
		return tokens.EOF, pos, "", nil
	}

	var tok tokens.Token
	var lit string
	var errs []Error

	c := s.bs[s.offset]

	switch {
	case c == '\n':
		s.next()
		s.row++
		s.col = 1
		tok, lit = tokens.Newline, "\n"
	case isDigit(c):
		tok, lit = tokens.Number, s.scanWhile(isDigit)
	case isLetter(c):
		if bytes.HasPrefix(s.bs[s.offset:], printKeyword) {
			for range printKeyword {
				s.next()
			}
			tok, lit = tokens.Print, string(printKeyword)
		} else {
			tok, lit = tokens.Ident, s.scanWhile(isAlnum)
		}
	case c == '=':
		s.next()
		tok, lit = tokens.Equals, "="
	case c == '+':
		s.next()
		tok, lit = tokens.Plus, "+"
	default:
		r, size := utf8.DecodeRune(s.bs[s.offset:])
		if r == utf8.RuneError {
			lit = fmt.Sprintf("\\x%02x", c)
		} else {
			lit = string(r)
		}
		for range size {
			s.next()
		}
		tok = tokens.Illegal
		errs = append(errs, Error{Pos: pos, Message: "unexpected character: " + lit})
	}

	pos.End = s.offset
	return tok, pos, lit, errs
}

func (s *Scanner) skipWhitespace() {
	for s.offset < len(s.bs) && isSpace(s.bs[s.offset]) {
		s.next()
	}
}

func (s *Scanner) scanWhile(f func(byte) bool) string {
	start := s.offset
	for s.offset < len(s.bs) && f(s.bs[s.offset]) {
		s.next()
	}
	return string(s.bs[start:s.offset])
}

func (s *Scanner) next() {
	s.offset++
	s.col++
}

// isSpace reports whitespace other than newline, which is a token.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isAlnum(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import (
	"strconv"

	"github.com/open-policy-agent/tiny/ast/internal/scanner"
	"github.com/open-policy-agent/tiny/ast/internal/tokens"
)

// TokenType identifies the kind of a Token.
type TokenType = tokens.Token

// Token kinds produced by Tokenize.
const (
	NumberToken  = tokens.Number
	IdentToken   = tokens.Ident
	EqualsToken  = tokens.Equals
	PlusToken    = tokens.Plus
	PrintToken   = tokens.Print
	NewlineToken = tokens.Newline
	EOFToken     = tokens.EOF
)

const eofLexeme = "EOF"

// Token is a single lexical unit of tiny source text. Value is only set for
// NumberToken, in which case Lexeme is the canonical decimal form of Value.
type Token struct {
	Type     TokenType
	Lexeme   string
	Value    int64
	Location *Location
}

func (t Token) String() string {
	if t.Type == tokens.Newline {
		return `"\n"`
	}
	return t.Lexeme
}

// Tokenize scans src into a token sequence terminated by exactly one
// EOFToken. The first character that does not belong to the language aborts
// the scan and no tokens are returned.
func Tokenize(filename string, src []byte) ([]Token, error) {
	return TokenizeAt(filename, 1, src)
}

// TokenizeAt is like Tokenize but numbers the first line of src as row.
func TokenizeAt(filename string, row int, src []byte) ([]Token, error) {

	if row < 1 {
		row = 1
	}

	s := scanner.NewBytes(src)
	var result []Token

	for {
		tok, pos, lit, errs := s.Scan()
		loc := &Location{
			Text:   src[pos.Offset:pos.End],
			File:   filename,
			Row:    pos.Row + row - 1,
			Col:    pos.Col,
			Offset: pos.Offset,
		}

		if len(errs) > 0 {
			return nil, Errors{NewError(LexErr, loc, "%s", errs[0].Message)}
		}

		t := Token{Type: tok, Lexeme: lit, Location: loc}

		switch tok {
		case tokens.Number:
			v, err := strconv.ParseInt(lit, 10, 64)
			if err != nil {
				return nil, Errors{NewError(LexErr, loc, "number out of range: %s", lit)}
			}
			t.Value = v
			t.Lexeme = strconv.FormatInt(v, 10)
		case tokens.EOF:
			t.Lexeme = eofLexeme
			return append(result, t), nil
		}

		result = append(result, t)
	}
}

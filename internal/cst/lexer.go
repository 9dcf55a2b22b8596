package cst

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// lexer walks the source byte slice once, left to right. It never backs up:
// pos only ever moves forward. Trivia (whitespace
// and comments) is skipped explicitly by skipTrivia and its extent handed
// back to the caller as a string, rather than being discarded, since it is
// exactly what a lossless tree needs to keep.
type lexer struct {
	src []byte
	pos int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

// line reports the 1-based line number of the current position, for error
// messages.
func (l *lexer) line() int {
	return 1 + bytes.Count(l.src[:l.pos], []byte{'\n'})
}

func (l *lexer) column() int {
	if idx := bytes.LastIndexByte(l.src[:l.pos], '\n'); idx >= 0 {
		return l.pos - idx
	}
	return l.pos + 1
}

// skipTrivia consumes whitespace, "//" line comments, and "/* */" block
// comments starting at the current position, and returns the consumed text
// verbatim.
func (l *lexer) skipTrivia() (string, error) {
	start := l.pos
	for !l.eof() {
		switch c := l.src[l.pos]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			l.pos += 2
			for !l.eof() && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			end := bytes.Index(l.src[l.pos+2:], []byte("*/"))
			if end < 0 {
				return "", &ParseError{Line: l.line(), Column: l.column(), Msg: "unterminated block comment"}
			}
			l.pos += 2 + end + 2
		default:
			return string(l.src[start:l.pos]), nil
		}
	}
	return string(l.src[start:l.pos]), nil
}

// expect consumes exactly one occurrence of the single-byte punctuation c,
// or returns a parse error naming what was found instead.
func (l *lexer) expect(c byte) error {
	if l.eof() || l.src[l.pos] != c {
		return l.unexpected(fmt.Sprintf("%q", string(c)))
	}
	l.pos++
	return nil
}

func (l *lexer) unexpected(want string) error {
	got := "end of input"
	if !l.eof() {
		got = fmt.Sprintf("%q", string(l.src[l.pos]))
	}
	return &ParseError{
		Line:   l.line(),
		Column: l.column(),
		Msg:    fmt.Sprintf("expected %s, found %s", want, got),
	}
}

// scanScalar reads exactly one JSON scalar token (string, number, true,
// false, or null) starting at the current position, using
// encoding/json.Decoder as the tokenizer so that string escaping and
// number grammar match encoding/json's own rules exactly rather than a
// hand-rolled reimplementation of RFC 8259. It returns the node and
// advances pos past the token's exact source bytes.
func (l *lexer) scanScalar() (*Scalar, error) {
	dec := json.NewDecoder(bytes.NewReader(l.src[l.pos:]))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: fmt.Sprintf("invalid literal: %v", err)}
	}
	consumed := int(dec.InputOffset())
	lexeme := string(l.src[l.pos : l.pos+consumed])
	l.pos += consumed

	switch v := tok.(type) {
	case string:
		return &Scalar{kind: KindString, lexeme: lexeme, value: v}, nil
	case json.Number:
		return &Scalar{kind: KindNumber, lexeme: lexeme, value: v}, nil
	case bool:
		return &Scalar{kind: KindBool, lexeme: lexeme, value: v}, nil
	case nil:
		if strings.TrimSpace(lexeme) != "null" {
			return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "invalid literal"}
		}
		return &Scalar{kind: KindNull, lexeme: lexeme, value: nil}, nil
	default:
		return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: fmt.Sprintf("unexpected token %v", tok)}
	}
}

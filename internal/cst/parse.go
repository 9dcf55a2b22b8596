package cst

import "bytes"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse builds a lossless tree from JSONC source. The returned root node's
// own leading trivia holds everything before the first token of the
// document — including a byte-order mark, if present — and its trailing
// trivia holds everything after the last token to end of file, so that
// Render(Parse(src)) reproduces src exactly when nothing is mutated.
//
// The grammar accepted is JSON plus "//" and "/* */" comments and a single
// trailing comma before any closing "}" or "]". The root value may be of
// any kind; callers that require an object at the root (as the jsonccedit
// facade does) check the returned Kind themselves.
func Parse(src []byte) (Node, error) {
	hadBOM := bytes.HasPrefix(src, utf8BOM)
	rest := src
	if hadBOM {
		rest = src[len(utf8BOM):]
	}

	l := newLexer(rest)
	leading, err := l.skipTrivia()
	if err != nil {
		return nil, err
	}
	if hadBOM {
		leading = string(utf8BOM) + leading
	}
	if l.eof() {
		return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "unexpected end of input, expected a value"}
	}

	root, err := parseValue(l)
	if err != nil {
		return nil, err
	}

	trailing, err := l.skipTrivia()
	if err != nil {
		return nil, err
	}
	if !l.eof() {
		return nil, l.unexpected("end of input")
	}

	root.setLeading(leading)
	root.setTrailing(trailing)
	root.setHasComma(false)
	return root, nil
}

// parseValue parses exactly one JSON value at the lexer's current
// position: an object, an array, or a scalar. Trivia surrounding the value
// is the caller's responsibility.
func parseValue(l *lexer) (Node, error) {
	switch l.peek() {
	case '{':
		return parseObject(l)
	case '[':
		return parseArray(l)
	case 0:
		return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "unexpected end of input, expected a value"}
	default:
		return l.scanScalar()
	}
}

func parseObject(l *lexer) (*Object, error) {
	braceLine := lineIndent(l.src, l.pos)
	if err := l.expect('{'); err != nil {
		return nil, err
	}
	obj := &Object{openLineIndent: braceLine}

	leading, err := l.skipTrivia()
	if err != nil {
		return nil, err
	}
	if l.peek() == '}' {
		obj.headTrivia = leading
		l.pos++
		return obj, nil
	}

	for {
		keyNode, err := l.scanScalar()
		if err != nil {
			return nil, err
		}
		if keyNode.kind != KindString {
			return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "object keys must be strings"}
		}
		key := keyNode.value.(string)
		if obj.Get(key) != nil {
			return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "duplicate key " + keyNode.lexeme}
		}

		afterKey, err := l.skipTrivia()
		if err != nil {
			return nil, err
		}
		if err := l.expect(':'); err != nil {
			return nil, err
		}
		afterColon, err := l.skipTrivia()
		if err != nil {
			return nil, err
		}
		value, err := parseValue(l)
		if err != nil {
			return nil, err
		}

		prop := &Property{
			parent:     obj,
			keyLexeme:  keyNode.lexeme,
			key:        key,
			afterKey:   afterKey,
			afterColon: afterColon,
			value:      value,
		}
		prop.leading = leading
		obj.properties = append(obj.properties, prop)

		beforeComma, err := l.skipTrivia()
		if err != nil {
			return nil, err
		}

		prop.trailing = beforeComma
		if l.peek() == ',' {
			l.pos++
			prop.hasComma = true
			afterComma, err := l.skipTrivia()
			if err != nil {
				return nil, err
			}
			left, right := splitAtNewline(afterComma)
			prop.afterComma = left
			leading = right
		} else {
			leading = ""
		}

		if l.peek() == '}' {
			l.pos++
			if leading != "" {
				// Trivia after the final comma with no following property
				// belongs to the object's own interior tail.
				obj.tailTrivia = leading
			}
			return obj, nil
		}
		if l.eof() {
			return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "unterminated object"}
		}
	}
}

func parseArray(l *lexer) (*Array, error) {
	if err := l.expect('['); err != nil {
		return nil, err
	}
	arr := &Array{}

	leading, err := l.skipTrivia()
	if err != nil {
		return nil, err
	}
	if l.peek() == ']' {
		arr.headTrivia = leading
		l.pos++
		return arr, nil
	}

	for {
		el, err := parseValue(l)
		if err != nil {
			return nil, err
		}
		el.setLeading(leading)
		arr.elements = append(arr.elements, el)

		beforeComma, err := l.skipTrivia()
		if err != nil {
			return nil, err
		}

		el.setTrailing(beforeComma)
		if l.peek() == ',' {
			l.pos++
			el.setHasComma(true)
			afterComma, err := l.skipTrivia()
			if err != nil {
				return nil, err
			}
			left, right := splitAtNewline(afterComma)
			el.setAfterComma(left)
			leading = right
		} else {
			leading = ""
		}

		if l.peek() == ']' {
			l.pos++
			if leading != "" {
				arr.tailTrivia = leading
			}
			return arr, nil
		}
		if l.eof() {
			return nil, &ParseError{Line: l.line(), Column: l.column(), Msg: "unterminated array"}
		}
	}
}

// splitAtNewline implements the comma-boundary trivia split: everything up
// to and including the first newline is left (the AfterComma trivia of the
// element or property before the comma), the remainder is right (leading
// trivia of whatever follows). If there is no newline, everything is
// right — a same-line comma has nothing to attach to the left side.
func splitAtNewline(trivia string) (left, right string) {
	idx := indexByte(trivia, '\n')
	if idx < 0 {
		return "", trivia
	}
	return trivia[:idx+1], trivia[idx+1:]
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// lineIndent returns the number of leading space/tab bytes on the source
// line containing pos, regardless of pos's own column within that line.
func lineIndent(src []byte, pos int) int {
	lineStart := bytes.LastIndexByte(src[:pos], '\n') + 1
	n := 0
	for i := lineStart; i < len(src) && (src[i] == ' ' || src[i] == '\t'); i++ {
		n++
	}
	return n
}

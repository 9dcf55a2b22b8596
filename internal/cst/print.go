package cst

import "strings"

// Render serializes a tree back to bytes. For a tree that came from Parse
// and was never mutated, Render(tree) reproduces the original source
// exactly, byte for byte, including comments, whitespace, and a byte-order
// mark.
func Render(n Node) []byte {
	var b strings.Builder
	b.WriteString(n.Leading())
	renderCore(&b, n)
	b.WriteString(n.Trailing())
	return []byte(b.String())
}

// renderCore writes a node's own content, excluding its leading and
// trailing trivia, which the caller attaches (Render for the document
// root, renderElement for array elements, renderProperty for object
// members).
func renderCore(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Scalar:
		b.WriteString(v.lexeme)
	case *Array:
		b.WriteByte('[')
		if len(v.elements) == 0 {
			b.WriteString(v.headTrivia)
		} else {
			for _, el := range v.elements {
				renderElement(b, el)
			}
			b.WriteString(v.tailTrivia)
		}
		b.WriteByte(']')
	case *Object:
		b.WriteByte('{')
		if len(v.properties) == 0 {
			b.WriteString(v.headTrivia)
		} else {
			for _, p := range v.properties {
				renderProperty(b, p)
			}
			b.WriteString(v.tailTrivia)
		}
		b.WriteByte('}')
	default:
		panic("jsonccedit: renderCore: unexpected node type")
	}
}

// renderElement writes an array element: its own leading trivia, its
// content, its own trailing trivia, the comma if one follows it, and
// whatever trivia shared the comma's line.
func renderElement(b *strings.Builder, el Node) {
	b.WriteString(el.Leading())
	renderCore(b, el)
	b.WriteString(el.Trailing())
	if el.HasComma() {
		b.WriteByte(',')
		b.WriteString(el.AfterComma())
	}
}

// renderProperty writes one object member: leading trivia, key, the
// trivia around the colon, the value (its own leading/trailing are unused
// for a property value — afterColon and p.trailing carry that role
// instead), the property's own trailing trivia, the comma if any, and
// whatever trivia shared the comma's line.
func renderProperty(b *strings.Builder, p *Property) {
	b.WriteString(p.leading)
	b.WriteString(p.keyLexeme)
	b.WriteString(p.afterKey)
	b.WriteByte(':')
	b.WriteString(p.afterColon)
	renderCore(b, p.value)
	b.WriteString(p.trailing)
	if p.hasComma {
		b.WriteByte(',')
		b.WriteString(p.afterComma)
	}
}

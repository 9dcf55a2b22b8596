package cst

import (
	"fmt"
	"strings"
)

// Property is an object member: a key, a colon, and a value node, each with
// their own surrounding trivia. Property's own leading trivia is everything
// before the key (comments, blank lines); its trailing trivia is everything
// after the value up to (not including) the comma or the closing brace.
type Property struct {
	base

	parent *Object

	keyLexeme  string // raw source text of the key, including quotes
	key        string // decoded key
	afterKey   string // trivia between the key and the colon
	afterColon string // trivia between the colon and the value's first token
	value      Node
}

func (p *Property) Kind() Kind    { return KindProperty }
func (p *Property) Key() string   { return p.key }
func (p *Property) Value() Node   { return p.value }
func (p *Property) SetValue(n Node) { p.value = n }

// IndentWidth reports the number of spaces of indentation on the property's
// own leading trivia — the column its key sits at. It is the anchor used to
// synthesize indentation for values ensure_multiline promotes to multiple
// lines, and is a reasonable approximation even for tab-indented sources
// (it simply counts whatever whitespace bytes precede the key).
func (p *Property) IndentWidth() int {
	if idx := strings.LastIndexByte(p.leading, '\n'); idx >= 0 {
		return len(p.leading) - idx - 1
	}
	return 0
}

// Index returns the property's current position among its parent object's
// properties, or -1 if it has been removed.
func (p *Property) Index() int {
	if p.parent == nil {
		return -1
	}
	return p.parent.IndexOf(p)
}

// Remove deletes the property from its parent object. The comma that
// followed it is removed along with it; if it was the last property, the
// new last property's trailing comma (if any) is cleared instead. Leading
// trivia belonging to the removed property — including any head comment —
// is discarded with it; the enclosing object's interior-tail trivia and any
// other property's trivia are untouched.
func (p *Property) Remove() error {
	if p.parent == nil {
		return fmt.Errorf("jsonccedit: property %q has no parent to remove it from", p.key)
	}
	o := p.parent
	idx := o.IndexOf(p)
	if idx < 0 {
		return fmt.Errorf("jsonccedit: property %q is not owned by its stated parent", p.key)
	}
	wasLast := idx == len(o.properties)-1
	o.properties = append(o.properties[:idx], o.properties[idx+1:]...)
	if wasLast && idx > 0 {
		dropComma(o.properties[idx-1])
	}
	p.parent = nil
	return nil
}

// ReplaceWith rewrites both the property's key and its value, preserving
// the property's own leading and trailing trivia — including any inline
// comment trailing the old value. This is the rename primitive: it is what
// lets a renamed key keep the trailing comment that belonged to its old
// name.
func (p *Property) ReplaceWith(newKey string, v any) error {
	if p.parent != nil {
		if existing := p.parent.Get(newKey); existing != nil && existing != p {
			return fmt.Errorf("jsonccedit: duplicate key %q", newKey)
		}
	}
	node, err := RenderNewNode(v)
	if err != nil {
		return err
	}
	p.key = newKey
	p.keyLexeme = encodeJSONString(newKey)
	p.value = node
	return nil
}

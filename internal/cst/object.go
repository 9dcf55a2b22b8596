package cst

import (
	"fmt"
	"strings"
)

// Object is a JSONC object: an ordered sequence of properties, plus the
// trivia that lives between the braces when the object is empty
// (headTrivia) — trivia that, once there is at least one property, is
// instead carried by the first property's own leading trivia and, after
// the last property, by the last property's trailing trivia or the
// object's tailTrivia (see property comma-boundary splitting in parse.go).
type Object struct {
	base

	properties []*Property
	headTrivia string
	tailTrivia string

	// openLineIndent is the indentation of the source line the object's
	// opening brace appears on. It anchors indentation for the first
	// property synthesized into a previously-empty object.
	openLineIndent int
}

func (o *Object) Kind() Kind             { return KindObject }
func (o *Object) Properties() []*Property { return o.properties }
func (o *Object) Len() int               { return len(o.properties) }

// Get returns the property with the given key, or nil.
func (o *Object) Get(key string) *Property {
	for _, p := range o.properties {
		if p.key == key {
			return p
		}
	}
	return nil
}

// IndexOf returns p's position among o's properties, or -1 if p is not a
// current child of o.
func (o *Object) IndexOf(p *Property) int {
	for i, q := range o.properties {
		if q == p {
			return i
		}
	}
	return -1
}

// Insert adds a new property at position i. Its leading trivia is
// synthesized to match the enclosing object's
// existing indentation, or — if the object has no properties yet — the
// indentation of the line its own opening brace sits on, plus one level.
// Comma placement is adjusted on both sides so the object remains valid
// JSONC regardless of where i falls. When the predecessor at i-1 was
// previously the object's last property and had no trailing comma, its
// trailing trivia (the text
// between it and the closing brace) is relocated to the object's own tail
// trivia via addComma, so the closing brace stays on its own line instead
// of gluing itself to the newly inserted value.
func (o *Object) Insert(i int, key string, v any) (*Property, error) {
	if o.Get(key) != nil {
		return nil, fmt.Errorf("jsonccedit: duplicate key %q", key)
	}
	if i < 0 || i > len(o.properties) {
		return nil, fmt.Errorf("jsonccedit: insert index %d out of range [0,%d]", i, len(o.properties))
	}
	valNode, err := RenderNewNode(v)
	if err != nil {
		return nil, err
	}
	wasEmpty := len(o.properties) == 0
	prop := &Property{
		parent:     o,
		key:        key,
		keyLexeme:  encodeJSONString(key),
		afterColon: " ",
		value:      valNode,
	}
	prop.leading = o.newPropertyLeading()

	o.properties = append(o.properties, nil)
	copy(o.properties[i+1:], o.properties[i:])
	o.properties[i] = prop

	if i > 0 {
		if pred := o.properties[i-1]; !pred.hasComma {
			if moved := addComma(pred); moved != "" {
				o.tailTrivia = moved
			}
		}
	}
	prop.hasComma = i < len(o.properties)-1

	if wasEmpty && strings.Contains(prop.leading, "\n") {
		o.headTrivia = ""
		o.tailTrivia = "\n" + strings.Repeat(" ", o.openLineIndent)
	}

	return prop, nil
}

// Append is Insert(o.Len(), key, v).
func (o *Object) Append(key string, v any) (*Property, error) {
	return o.Insert(len(o.properties), key, v)
}

func (o *Object) newPropertyLeading() string {
	if len(o.properties) > 0 {
		ref := o.properties[0].leading
		if idx := strings.LastIndexByte(ref, '\n'); idx >= 0 {
			return ref[idx:]
		}
		return ref
	}
	return "\n" + strings.Repeat(" ", o.openLineIndent+2)
}

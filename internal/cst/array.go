package cst

import (
	"fmt"
	"strings"
)

// Array is a JSONC array: an ordered sequence of value nodes, plus the
// trivia between the brackets when the array is empty (headTrivia) and the
// trivia between the last element's comma and the closing bracket when it
// is not (tailTrivia), mirroring Object's treatment.
type Array struct {
	base

	elements   []Node
	headTrivia string
	tailTrivia string
}

func (a *Array) Kind() Kind       { return KindArray }
func (a *Array) Elements() []Node { return a.elements }
func (a *Array) Len() int         { return len(a.elements) }

// ElementPlainValue decodes element i into a plain value graph, for
// equality comparisons against a target element.
func (a *Array) ElementPlainValue(i int) any { return PlainValue(a.elements[i]) }

// Append renders v as a new element and adds it at the end. Comma
// placement is symmetric to Object.Insert, including relocating the
// previous last element's trailing trivia into the array's own tail
// trivia when that element didn't already have a comma, so the closing
// bracket stays on its own line for a multiline array. The new element's
// leading trivia mimics the array's existing style — one indented line
// per element if the array is already laid out that way, otherwise a
// single space after the comma.
func (a *Array) Append(v any) (Node, error) {
	node, err := RenderNewNode(v)
	if err != nil {
		return nil, err
	}
	if len(a.elements) > 0 {
		last := a.elements[len(a.elements)-1]
		if !last.HasComma() {
			if moved := addComma(last); moved != "" {
				a.tailTrivia = moved
			}
		}
		node.setLeading(a.elementLeadingTemplate())
	}
	node.setHasComma(false)
	a.elements = append(a.elements, node)
	return node, nil
}

func (a *Array) elementLeadingTemplate() string {
	ref := a.elements[0].Leading()
	if idx := strings.LastIndexByte(ref, '\n'); idx >= 0 {
		return ref[idx:]
	}
	return " "
}

// ReplaceElementAt renders v as a new element at index i, preserving the
// old element's leading/trailing trivia and comma flag.
func (a *Array) ReplaceElementAt(i int, v any) error {
	if i < 0 || i >= len(a.elements) {
		return fmt.Errorf("jsonccedit: array index %d out of range [0,%d)", i, len(a.elements))
	}
	node, err := RenderNewNode(v)
	if err != nil {
		return err
	}
	TransferTrivia(a.elements[i], node)
	a.elements[i] = node
	return nil
}

// RemoveElementAt deletes element i, symmetric to Property.Remove: the
// comma that followed it goes with it, unless it was the last element, in
// which case the new last element's trailing comma is cleared instead.
func (a *Array) RemoveElementAt(i int) error {
	if i < 0 || i >= len(a.elements) {
		return fmt.Errorf("jsonccedit: array index %d out of range [0,%d)", i, len(a.elements))
	}
	wasLast := i == len(a.elements)-1
	a.elements = append(a.elements[:i], a.elements[i+1:]...)
	if wasLast && i > 0 {
		dropComma(a.elements[i-1])
	}
	return nil
}

// EnsureMultilineAt rewrites the array so each element sits on its own
// line at parentIndent+2 spaces, with the closing bracket on its own line
// at parentIndent. parentIndent is supplied by the caller — the indent
// width of the property or slot this array is the value of — since a
// freshly rendered array has no source position of its own to infer it
// from. Idempotent.
func (a *Array) EnsureMultilineAt(parentIndent int) {
	if a.isMultiline() {
		return
	}
	childLeading := "\n" + strings.Repeat(" ", parentIndent+2)
	closeLeading := "\n" + strings.Repeat(" ", parentIndent)
	for _, el := range a.elements {
		el.setLeading(childLeading)
	}
	a.headTrivia = ""
	a.tailTrivia = closeLeading
}

func (a *Array) isMultiline() bool {
	if len(a.elements) == 0 {
		return strings.Contains(a.headTrivia, "\n")
	}
	return strings.Contains(a.elements[0].Leading(), "\n")
}

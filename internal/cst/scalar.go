package cst

import "fmt"

// Scalar is a string, number, boolean, or null value node. It keeps both
// the decoded value (used for comparisons and for building target graphs)
// and the exact source lexeme (used for byte-exact rendering when the value
// is left untouched).
type Scalar struct {
	base

	kind   Kind
	lexeme string
	value  any // nil, bool, string, or json.Number
}

func (s *Scalar) Kind() Kind     { return s.kind }
func (s *Scalar) Lexeme() string { return s.lexeme }
func (s *Scalar) Value() any     { return s.value }

// SetValue rewrites the node's lexeme for the new scalar v, preserving
// leading and trailing trivia. v must decode to a scalar node; passing an
// array or object is a programmer error — callers must go through a
// composite replace instead.
func (s *Scalar) SetValue(v any) error {
	node, err := RenderNewNode(v)
	if err != nil {
		return err
	}
	sc, ok := node.(*Scalar)
	if !ok {
		return fmt.Errorf("jsonccedit: cannot scalar.set_value with composite value of type %T; use a composite replace instead", v)
	}
	s.kind = sc.kind
	s.lexeme = sc.lexeme
	s.value = sc.value
	return nil
}

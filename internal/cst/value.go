package cst

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// PlainValue decodes a subtree into the target value graph representation:
// nil, bool, string, json.Number for scalars, []any for arrays, and
// *orderedmap.OrderedMap for objects. Property nodes have no plain form of
// their own; PlainValue is only ever called on the value a Property, array
// element, or the document root holds.
func PlainValue(n Node) any {
	switch v := n.(type) {
	case *Scalar:
		return v.value
	case *Array:
		out := make([]any, len(v.elements))
		for i, el := range v.elements {
			out[i] = PlainValue(el)
		}
		return out
	case *Object:
		out := orderedmap.New()
		for _, p := range v.properties {
			out.Set(p.key, PlainValue(p.value))
		}
		return out
	default:
		panic(fmt.Sprintf("jsonccedit: PlainValue: unexpected node type %T", n))
	}
}

// RenderNewNode builds a brand-new CST subtree for a plain Go value with no
// trivia of its own (empty leading/trailing, no trailing comma). Callers
// that splice the result into an existing tree are responsible for giving
// it trivia appropriate to its new position — TransferTrivia when replacing
// an existing node, or a synthesized indentation string when inserting.
//
// Accepted input types are nil, bool, string, any integer or float type,
// json.Number, []any, map[string]any, *orderedmap.OrderedMap, and
// orderedmap.OrderedMap. Any other type, or a float that is NaN or
// infinite, is an unrepresentable target value and returns an error.
func RenderNewNode(v any) (Node, error) {
	return renderNewNode(v, map[any]bool{})
}

func renderNewNode(v any, seen map[any]bool) (Node, error) {
	switch val := v.(type) {
	case nil:
		return &Scalar{kind: KindNull, lexeme: "null", value: nil}, nil
	case bool:
		lex := "false"
		if val {
			lex = "true"
		}
		return &Scalar{kind: KindBool, lexeme: lex, value: val}, nil
	case string:
		return &Scalar{kind: KindString, lexeme: encodeJSONString(val), value: val}, nil
	case json.Number:
		if err := validateNumberLexeme(string(val)); err != nil {
			return nil, err
		}
		return &Scalar{kind: KindNumber, lexeme: string(val), value: val}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		num := json.Number(fmt.Sprintf("%d", val))
		return &Scalar{kind: KindNumber, lexeme: string(num), value: num}, nil
	case float32:
		return renderNewNode(float64(val), seen)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("jsonccedit: cannot render non-finite number %v", val)
		}
		num := json.Number(strconv.FormatFloat(val, 'g', -1, 64))
		return &Scalar{kind: KindNumber, lexeme: string(num), value: num}, nil
	case []any:
		if seen[ptrKey(val)] {
			return nil, fmt.Errorf("jsonccedit: cannot render cyclic array value")
		}
		seen = withSeen(seen, ptrKey(val))
		arr := &Array{elements: make([]Node, len(val))}
		for i, el := range val {
			child, err := renderNewNode(el, seen)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				arr.elements[i-1].setHasComma(true)
				child.setLeading(" ")
			}
			arr.elements[i] = child
		}
		return arr, nil
	case *orderedmap.OrderedMap:
		return renderObjectFromOrderedMap(val, v, seen)
	case orderedmap.OrderedMap:
		return renderObjectFromOrderedMap(&val, &val, seen)
	case map[string]any:
		if seen[ptrKey(val)] {
			return nil, fmt.Errorf("jsonccedit: cannot render cyclic object value")
		}
		seen = withSeen(seen, ptrKey(val))
		obj := &Object{}
		i := 0
		for k, el := range val {
			child, err := renderNewNode(el, seen)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				obj.properties[i-1].hasComma = true
				child.setLeading(" ")
			}
			obj.properties = append(obj.properties, &Property{
				parent:     obj,
				key:        k,
				keyLexeme:  encodeJSONString(k),
				afterColon: " ",
				value:      child,
			})
			i++
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("jsonccedit: cannot render value of unsupported type %T", v)
	}
}

func renderObjectFromOrderedMap(m *orderedmap.OrderedMap, identity any, seen map[any]bool) (Node, error) {
	if seen[ptrKey(identity)] {
		return nil, fmt.Errorf("jsonccedit: cannot render cyclic object value")
	}
	seen = withSeen(seen, ptrKey(identity))
	obj := &Object{}
	keys := m.Keys()
	for i, k := range keys {
		raw, _ := m.Get(k)
		child, err := renderNewNode(raw, seen)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			obj.properties[i-1].hasComma = true
			child.setLeading(" ")
		}
		obj.properties = append(obj.properties, &Property{
			parent:     obj,
			key:        k,
			keyLexeme:  encodeJSONString(k),
			afterColon: " ",
			value:      child,
		})
	}
	return obj, nil
}

// ptrKey turns a slice/map/pointer value into a comparable cycle-detection
// key. Two independent values that happen to alias the same underlying
// storage are indistinguishable from a real cycle here, which is
// acceptable: it only ever makes RenderNewNode reject something instead of
// looping forever.
func ptrKey(v any) any {
	switch val := v.(type) {
	case []any:
		if val == nil {
			return (*int)(nil)
		}
		return fmt.Sprintf("%p", val)
	case map[string]any:
		return fmt.Sprintf("%p", val)
	default:
		return v
	}
}

func withSeen(seen map[any]bool, key any) map[any]bool {
	next := make(map[any]bool, len(seen)+1)
	for k := range seen {
		next[k] = true
	}
	next[key] = true
	return next
}

func validateNumberLexeme(s string) error {
	if s == "" {
		return fmt.Errorf("jsonccedit: cannot render empty number literal")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("jsonccedit: cannot render invalid number literal %q: %w", s, err)
	}
	return nil
}

// encodeJSONString renders s as a double-quoted JSON string literal. It
// reuses encoding/json's own escaping by marshaling a bare string, which is
// exactly the RFC 8259 escaping rules a hand-rolled encoder would otherwise
// have to duplicate. HTML escaping is turned off: json.Marshal's default
// behavior of rewriting "<", ">", and "&" to Unicode escape sequences
// (a backslash, "u", and four hex digits) is meant for
// embedding JSON in an HTML document, not for producing minimally-escaped
// JSONC, so a plain json.Encoder with SetEscapeHTML(false) is used instead.
func encodeJSONString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Encode only fails on un-marshalable types or cyclic structures;
		// a string can never trigger either.
		panic(fmt.Sprintf("jsonccedit: unexpected error encoding string literal: %v", err))
	}
	// Encode appends a trailing newline; strip it to get a bare literal.
	return strings.TrimSuffix(buf.String(), "\n")
}

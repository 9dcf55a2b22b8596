// Package reconcile computes the minimal set of tree edits that makes a
// parsed CST match a target value graph, and applies them through the
// tree's own mutation primitives so that every untouched byte of the
// original source — comments, whitespace, key order for keys that don't
// move — survives.
package reconcile

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/iancoleman/orderedmap"

	"github.com/kevinwang15/jsonccedit/internal/cst"
)

// Reconcile mutates root in place so that cst.PlainValue(root) equals
// target, preserving as much of root's existing trivia as possible.
func Reconcile(root *cst.Object, target *orderedmap.OrderedMap) error {
	if equalValues(cst.PlainValue(root), target) {
		return nil
	}
	return reconcileObject(root, target)
}

// reconcileObject walks target's keys in order, maintaining a cursor that
// tracks where the next new or renamed property belongs among the
// properties that already survived. A key present in both is reconciled
// in place; a key present only in target either substitutes a same-slot
// removal candidate (rename) or is inserted fresh; a key present only in
// the tree, once every target key has been placed, is removed.
func reconcileObject(obj *cst.Object, target *orderedmap.OrderedMap) error {
	toRemove := map[string]bool{}
	for _, p := range obj.Properties() {
		toRemove[p.Key()] = true
	}
	for _, k := range target.Keys() {
		delete(toRemove, k)
	}

	processed := map[string]bool{}
	insertIndex := 0

	for _, key := range target.Keys() {
		val, _ := target.Get(key)

		if p := obj.Get(key); p != nil {
			if err := reconcileValue(p, val); err != nil {
				return err
			}
			insertIndex = p.Index() + 1
			processed[key] = true
			continue
		}

		if p, err := renameCandidate(obj, toRemove, processed, insertIndex); err != nil {
			return err
		} else if p != nil {
			oldKey := p.Key()
			if err := p.ReplaceWith(key, val); err != nil {
				return err
			}
			processed[oldKey] = true
			processed[key] = true
			delete(toRemove, oldKey)
			ensureArrayMultiline(p, val)
			insertIndex = p.Index() + 1
			continue
		}

		p, err := obj.Insert(insertIndex, key, val)
		if err != nil {
			return err
		}
		ensureArrayMultiline(p, val)
		insertIndex = p.Index() + 1
	}

	for key := range toRemove {
		if processed[key] {
			continue
		}
		if p := obj.Get(key); p != nil {
			if err := p.Remove(); err != nil {
				return err
			}
		}
	}
	return nil
}

// renameCandidate looks for a still-unprocessed removal candidate sitting
// exactly at pos. At most one property can occupy a given index at any
// moment, so map iteration order over toRemove cannot affect the result.
func renameCandidate(obj *cst.Object, toRemove, processed map[string]bool, pos int) (*cst.Property, error) {
	for oldKey := range toRemove {
		if processed[oldKey] {
			continue
		}
		p := obj.Get(oldKey)
		if p != nil && p.Index() == pos {
			return p, nil
		}
	}
	return nil, nil
}

func ensureArrayMultiline(p *cst.Property, value any) {
	if arr, ok := p.Value().(*cst.Array); ok && arr.Len() > 0 {
		arr.EnsureMultilineAt(p.IndentWidth())
	}
}

// reconcileValue drives one existing property's value toward the target
// value it should hold. Arrays are diffed element-by-element without
// recursing into their elements; objects recurse; everything else is a
// scalar assignment.
func reconcileValue(p *cst.Property, value any) error {
	if arrVal, ok := value.([]any); ok {
		return reconcileArraySlot(p, arrVal)
	}
	if om, ok := asObject(value); ok {
		if curObj, isObj := p.Value().(*cst.Object); isObj {
			return reconcileObject(curObj, om)
		}
		return replaceValue(p, value)
	}
	if sc, isScalar := p.Value().(*cst.Scalar); isScalar {
		if equalValues(sc.Value(), value) {
			return nil
		}
		return sc.SetValue(value)
	}
	return replaceValue(p, value)
}

func replaceValue(p *cst.Property, value any) error {
	n, err := cst.RenderNewNode(value)
	if err != nil {
		return err
	}
	p.SetValue(n)
	return nil
}

func reconcileArraySlot(p *cst.Property, target []any) error {
	if arr, ok := p.Value().(*cst.Array); ok {
		return reconcileArrayInPlace(arr, target)
	}
	if err := replaceValue(p, target); err != nil {
		return err
	}
	ensureArrayMultiline(p, target)
	return nil
}

// reconcileArrayInPlace replaces or drops elements positionally with no
// recursion into their structure: comments around an element survive a
// replacement through its transferred trivia, but comments inside it survive
// only if the element at that index is left untouched, matching the property that
// nested arrays and objects inside array elements are not diffed, only
// replaced wholesale when their value actually changes.
func reconcileArrayInPlace(arr *cst.Array, target []any) error {
	for i := arr.Len() - 1; i >= len(target); i-- {
		if err := arr.RemoveElementAt(i); err != nil {
			return err
		}
	}
	for i := 0; i < len(target); i++ {
		if i < arr.Len() {
			if equalValues(arr.ElementPlainValue(i), target[i]) {
				continue
			}
			if err := arr.ReplaceElementAt(i, target[i]); err != nil {
				return err
			}
			continue
		}
		if _, err := arr.Append(target[i]); err != nil {
			return err
		}
	}
	return nil
}

func asObject(v any) (*orderedmap.OrderedMap, bool) {
	switch val := v.(type) {
	case *orderedmap.OrderedMap:
		return val, true
	case orderedmap.OrderedMap:
		return &val, true
	case map[string]any:
		m := orderedmap.New()
		for k, el := range val {
			m.Set(k, el)
		}
		return m, true
	default:
		return nil, false
	}
}

// equalValues reports whether a and b encode to the same JSON, reusing
// json-patch's deep-equality check instead of a hand-rolled comparison
// across json.Number, *orderedmap.OrderedMap, and []any. Skipping a
// mutation when this reports equal is what keeps an unmodified region
// byte-exact instead of getting rewritten into an equivalent-but-different
// canonical form.
func equalValues(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return jsonpatch.Equal(ab, bb)
}

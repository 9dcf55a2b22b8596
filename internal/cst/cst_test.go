package cst

import (
	"encoding/json"
	"testing"
)

func TestParseRenderRoundTripIsByteExact(t *testing.T) {
	inputs := []string{
		`{}`,
		"{ }",
		`{"a": 1, "b": 2}`,
		"{\n  // leading comment\n  \"a\": 1,\n  \"b\": [1, 2, 3], // inline\n  \"c\": { \"nested\": true }\n}\n",
		"{\n  \"a\": 1,\n}\n", // trailing comma
		"[]",
		"[1, 2, 3]",
		"{ /* just a comment */ }",
	}
	for _, in := range inputs {
		root, err := Parse([]byte(in))
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		out := Render(root)
		if string(out) != in {
			t.Fatalf("round trip mismatch:\n  input:  %q\n  output: %q", in, out)
		}
	}
}

func TestParsePreservesBOM(t *testing.T) {
	in := "\ufeff{\"a\": 1}"
	root, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	out := Render(root)
	if string(out) != in {
		t.Fatalf("BOM not preserved: got %q, want %q", out, in)
	}
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1, "a": 2}`))
	if err == nil {
		t.Fatal("expected error for duplicate key, got nil")
	}
}

func TestParseRejectsUnbalancedInput(t *testing.T) {
	cases := []string{
		`{"a": 1`,
		`{"a": }`,
		`[1, 2`,
		`"invalid json{`,
	}
	for _, in := range cases {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("Parse(%q): expected error, got nil", in)
		}
	}
}

func TestParseNonObjectRoot(t *testing.T) {
	root, err := Parse([]byte(`[1, 2, 3]`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if root.Kind() != KindArray {
		t.Fatalf("expected array root, got %v", root.Kind())
	}
}

func TestObjectInsertAndAppend(t *testing.T) {
	root, err := Parse([]byte("{\n  \"a\": 1\n}"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)

	if _, err := obj.Append("b", "hello"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	out := string(Render(obj))
	want := "{\n  \"a\": 1,\n  \"b\": \"hello\"\n}"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	if _, err := obj.Append("a", 2); err == nil {
		t.Fatal("expected duplicate key error, got nil")
	}
}

func TestObjectAppendTwiceKeepsClosingBraceOnOwnLine(t *testing.T) {
	root, err := Parse([]byte("{\n  \"a\": 1\n}"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)

	if _, err := obj.Append("b", float64(2)); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if _, err := obj.Append("c", float64(3)); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	out := string(Render(obj))
	want := "{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestArrayAppendKeepsClosingBracketOnOwnLine(t *testing.T) {
	root, err := Parse([]byte("[\n  1\n]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	arr := root.(*Array)
	if _, err := arr.Append(float64(2)); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	out := string(Render(arr))
	want := "[\n  1,\n  2\n]"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEncodeJSONStringDoesNotHTMLEscape(t *testing.T) {
	root, err := Parse([]byte("{\n  \"a\": \"1.0.0\"\n}"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)
	if _, err := obj.Append("range", ">1.0.0 <2.0.0 & stable"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	out := string(Render(obj))
	want := "{\n  \"a\": \"1.0.0\",\n  \"range\": \">1.0.0 <2.0.0 & stable\"\n}"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestObjectInsertIntoEmptyObjectClosesOnOwnLine(t *testing.T) {
	root, err := Parse([]byte("{\n}"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)
	if _, err := obj.Append("a", float64(1)); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	out := string(Render(obj))
	want := "{\n  \"a\": 1\n}"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPropertyRemoveKeepsPrecedingComma(t *testing.T) {
	root, err := Parse([]byte("{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)
	if err := obj.Get("b").Remove(); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	out := string(Render(obj))
	want := "{\n  \"a\": 1,\n  \"c\": 3\n}"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPropertyRemoveLastClearsTrailingComma(t *testing.T) {
	root, err := Parse([]byte("{\n  \"a\": 1,\n  \"b\": 2\n}"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)
	if err := obj.Get("b").Remove(); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	out := string(Render(obj))
	want := "{\n  \"a\": 1\n}"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestPropertyReplaceWithPreservesTrailingComment(t *testing.T) {
	root, err := Parse([]byte(`{"toBeRenamedProperty": "oldvalue", // should not be removed
}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)
	p := obj.Get("toBeRenamedProperty")
	if err := p.ReplaceWith("renamedProperty", "newvalue"); err != nil {
		t.Fatalf("ReplaceWith returned error: %v", err)
	}
	out := string(Render(obj))
	want := `{"renamedProperty": "newvalue", // should not be removed
}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestScalarSetValuePreservesTrivia(t *testing.T) {
	root, err := Parse([]byte(`{"a": /* comment */ 1 /* trailing */, "b": 2}`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	obj := root.(*Object)
	sc := obj.Get("a").Value().(*Scalar)
	if err := sc.SetValue(2); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	out := string(Render(obj))
	want := `{"a": /* comment */ 2 /* trailing */, "b": 2}`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestArrayEnsureMultilineIsIdempotent(t *testing.T) {
	arr := &Array{elements: []Node{
		&Scalar{kind: KindNumber, lexeme: "1", value: json.Number("1")},
		&Scalar{kind: KindNumber, lexeme: "2", value: json.Number("2")},
	}}
	arr.elements[0].setHasComma(true)
	arr.elements[1].setLeading(" ")

	arr.EnsureMultilineAt(0)
	first := string(Render(arr))
	arr.EnsureMultilineAt(0)
	second := string(Render(arr))
	if first != second {
		t.Fatalf("EnsureMultilineAt is not idempotent: %q != %q", first, second)
	}
}

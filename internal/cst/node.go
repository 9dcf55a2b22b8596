package cst

// Node is the common interface satisfied by every CST node kind: scalars,
// arrays, objects, and properties. It exposes the trivia every node owns —
// leading trivia, trailing trivia, and whether a comma follows it in the
// source — plus unexported setters used internally by the mutation
// primitives and by TransferTrivia.
type Node interface {
	Kind() Kind
	Leading() string
	Trailing() string
	// AfterComma is trivia that sits after this node's comma but on the
	// same source line as it (e.g. an inline comment). It only renders
	// when HasComma is true; it is kept separate from Trailing because
	// the comma itself sits between the two.
	AfterComma() string
	HasComma() bool

	setLeading(string)
	setTrailing(string)
	setAfterComma(string)
	setHasComma(bool)
}

// base is embedded by every concrete node type and implements the trivia
// bookkeeping shared by all of them.
type base struct {
	leading    string
	trailing   string
	afterComma string
	hasComma   bool
}

func (b *base) Leading() string    { return b.leading }
func (b *base) Trailing() string   { return b.trailing }
func (b *base) AfterComma() string { return b.afterComma }
func (b *base) HasComma() bool     { return b.hasComma }

func (b *base) setLeading(s string)    { b.leading = s }
func (b *base) setTrailing(s string)   { b.trailing = s }
func (b *base) setAfterComma(s string) { b.afterComma = s }
func (b *base) setHasComma(v bool)     { b.hasComma = v }

// TransferTrivia copies old's leading trivia, trailing trivia, comma
// flag, and same-line after-comma trivia onto new. It is how every
// "replace this node with a different kind of value" primitive
// (scalar<->array<->object) keeps the replaced node's surrounding
// comments and whitespace anchored to its neighbors.
func TransferTrivia(old, new Node) {
	new.setLeading(old.Leading())
	new.setTrailing(old.Trailing())
	new.setAfterComma(old.AfterComma())
	new.setHasComma(old.HasComma())
}

// dropComma clears a node's comma while preserving any same-line trivia
// that followed it, by folding that trivia into Trailing instead of
// discarding it. Used when a following sibling is removed and this node
// becomes the new last child.
func dropComma(n Node) {
	if !n.HasComma() {
		return
	}
	if ac := n.AfterComma(); ac != "" {
		n.setTrailing(n.Trailing() + ac)
		n.setAfterComma("")
	}
	n.setHasComma(false)
}

// addComma is the mirror of dropComma: it gives a node a comma it didn't
// have before, because a new sibling is being inserted right after it. If
// the node was previously the last child, its Trailing holds whatever sat
// between it and the closing delimiter (typically a newline) — that text
// belongs after the new comma, not before it, so addComma clears it from
// the node and returns it for the caller to fold into the parent's own
// tail trivia (the closing delimiter's own leading text, which persists
// across further inserts once established).
func addComma(n Node) string {
	moved := n.Trailing()
	n.setTrailing("")
	n.setHasComma(true)
	return moved
}

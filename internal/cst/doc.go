// Package cst implements a lossless concrete syntax tree for JSONC (JSON
// with // and /* */ comments, plus trailing commas). Every byte of a parsed
// source — including whitespace and comments — is retained on the tree, so
// that rendering an unmodified tree reproduces the source exactly.
//
// A tree is built once by Parse, mutated in place through the primitives on
// Object, Property, Array, and Scalar, and rendered once by Render. There is
// no cross-call state: a *Object returned by Parse owns every node reachable
// from it and is safe to discard along with the whole tree when done.
package cst

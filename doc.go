// Package graph is a content-addressable structural store.
//
// It takes an arbitrary tree of nested values,
// such as the result of decoding a JSON document,
// and flattens it into a graph of canonical values,
// each stored under a key computed from its content.
// That key is a cryptographic hash of the value's canonical encoding.
//
// Atomic values
// (numbers, strings, booleans, and symbols)
// are stored as themselves.
// Compound values
// (arrays and maps)
// are stored with each child replaced by the child's key.
// Map entries are sorted by name,
// so two maps with the same entries have the same key
// regardless of the order in which the entries appeared.
// Array order is significant.
//
// Because a compound value's key depends only on its children's keys,
// a subtree that occurs in several places in the input
// is stored exactly once,
// and every parent refers to it by the same key.
// This is structural sharing.
//
// With a sufficiently good hash algorithm,
// the likelihood of two distinct canonical values colliding
// is small enough to ignore.
// This package uses SHA2-256 by default,
// with BLAKE3 available as an alternative.
// Every digest starts with a tag for the kind of value,
// so the number 1, the string "1", and the symbol 1
// all have different keys,
// as do the empty array and the empty map.
//
// A Graph does the normalizing and hashing.
// It writes into a Store,
// which is a plain append-only map from key to canonical value;
// see the subpackages of store for implementations.
// Nothing is ever removed from a Store.
//
// Walk traverses a stored graph from a root key the way a renderer needs:
// bounded depth, each key visited once,
// atomic children reported inline,
// compound children reported as edges.
// The dot subpackage uses it to draw diagrams.
package graph

// Package report parses the indentation-structured "key: value" status dumps
// printed by the appliance CLI (for example `show ip hotspot`) and extracts
// identifiers from the resulting tree.
//
// Nesting in these dumps is expressed only by the horizontal position of the
// colon. Keys are right-aligned so that every field of one level has its colon
// in the same column, and each level sits one indentation step (4 columns)
// further right than its parent. Parsing happens in three stages:
//
//	Tokenize     raw text -> lazy sequence of Line
//	Builder      Lines    -> *Tree (arena of Records)
//	ExtractActive *Tree   -> Set of identifiers
//
// Any report that does not follow the convention is rejected with an error
// wrapping ErrMalformed; nothing is guessed.
package report

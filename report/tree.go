package report

import (
	"fmt"
	"strings"
)

// NodeID addresses a Record inside a Tree.
type NodeID int

const (
	// Root is the synthetic record every tree starts with.
	Root NodeID = 0
	// NoParent is the parent of Root.
	NoParent NodeID = -1
)

// Record is one "key: value" entry and the entries nested under it.
type Record struct {
	Key      string
	Value    string
	Column   int
	Parent   NodeID
	Children []NodeID
}

// Tree is an arena of records. Records refer to each other by index only, so
// a Tree can be copied and compared without chasing pointers. It is
// append-only while being built and read-only afterwards.
type Tree struct {
	records []Record
}

func newTree(rootColumn int) *Tree {
	return &Tree{records: []Record{{Column: rootColumn, Parent: NoParent}}}
}

// add appends a record under parent and returns its id.
func (t *Tree) add(parent NodeID, line Line) NodeID {
	id := NodeID(len(t.records))
	t.records = append(t.records, Record{
		Key:    line.Key,
		Value:  line.Value,
		Column: line.Column,
		Parent: parent,
	})
	t.records[parent].Children = append(t.records[parent].Children, id)
	return id
}

// Len returns the number of records, not counting the root.
func (t *Tree) Len() int {
	return len(t.records) - 1
}

// Record returns a copy of the record with the given id.
func (t *Tree) Record(id NodeID) Record {
	return t.records[id]
}

func (t *Tree) Key(id NodeID) string { return t.records[id].Key }

func (t *Tree) Value(id NodeID) string { return t.records[id].Value }

// Parent returns NoParent for Root.
func (t *Tree) Parent(id NodeID) NodeID { return t.records[id].Parent }

// Children returns the direct children of id in report order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.records[id].Children
}

// Child returns the first direct child of id whose key is key.
func (t *Tree) Child(id NodeID, key string) (NodeID, bool) {
	for _, c := range t.records[id].Children {
		if t.records[c].Key == key {
			return c, true
		}
	}
	return NoParent, false
}

// ChildrenNamed returns all direct children of id whose key is key.
func (t *Tree) ChildrenNamed(id NodeID, key string) []NodeID {
	var out []NodeID
	for _, c := range t.records[id].Children {
		if t.records[c].Key == key {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits every record below the root depth-first in report order. depth
// is 1 for top-level records. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	type frame struct {
		id    NodeID
		depth int
	}
	stack := make([]frame, 0, 16)
	push := func(parent NodeID, depth int) {
		children := t.records[parent].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], depth})
		}
	}
	push(Root, 1)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.id, f.depth) {
			return
		}
		push(f.id, f.depth+1)
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	records := make([]Record, len(t.records))
	for i, r := range t.records {
		r.Children = append([]NodeID(nil), r.Children...)
		records[i] = r
	}
	return &Tree{records: records}
}

// Records returns a copy of the arena, root first.
func (t *Tree) Records() []Record {
	return t.Clone().records
}

// String renders the tree with two spaces per level, for debugging.
func (t *Tree) String() string {
	var b strings.Builder
	t.Walk(func(id NodeID, depth int) bool {
		r := t.records[id]
		b.WriteString(strings.Repeat("  ", depth-1))
		if r.Value == "" {
			fmt.Fprintf(&b, "%s:\n", r.Key)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", r.Key, r.Value)
		}
		return true
	})
	return b.String()
}

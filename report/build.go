package report

import "iter"

const (
	// DefaultStep is the number of columns between nesting levels.
	DefaultStep = 4
	// DefaultRootColumn is the reference column of the synthetic root. It
	// puts top-level keys of the appliance dump at column 17.
	DefaultRootColumn = 13
)

// Builder turns a sequence of Lines into a Tree.
type Builder struct {
	Step       int
	RootColumn int
}

// DefaultBuilder returns a Builder for the appliance's dump format.
func DefaultBuilder() Builder {
	return Builder{Step: DefaultStep, RootColumn: DefaultRootColumn}
}

// Build consumes lines in a single pass.
//
// Two handles drive the construction: current is the record receiving
// children, previous is the record appended last. columns holds the
// reference columns, topped by the column of the last appended record. A
// line one step right of the reference becomes a child of previous, a line
// in the same column becomes a sibling under current, and a line n steps
// left climbs n levels before being appended.
func (b Builder) Build(lines iter.Seq[Line]) (*Tree, error) {
	step := b.Step
	if step <= 0 {
		step = DefaultStep
	}
	tree := newTree(b.RootColumn)
	columns := []int{b.RootColumn}
	current, previous := Root, Root

	for line := range lines {
		reference := columns[len(columns)-1]
		delta := line.Column - reference
		fail := func(kind error) (*Tree, error) {
			return nil, &ParseError{Kind: kind, Line: line.Number, Column: line.Column, Reference: reference, Key: line.Key}
		}
		if delta%step != 0 {
			return fail(ErrMisalignedIndent)
		}

		switch {
		case delta < 0:
			for range -delta / step {
				parent := tree.Parent(current)
				if parent == NoParent {
					return fail(ErrOrphanNode)
				}
				columns = columns[:len(columns)-1]
				current = parent
			}
			columns = append(columns, line.Column)
		case delta > 0:
			if delta > step {
				return fail(ErrSkippedLevel)
			}
			columns = append(columns, line.Column)
			current = previous
		}
		previous = tree.add(current, line)
	}
	return tree, nil
}

// Parse builds a tree from raw report text using the default format.
func Parse(raw string) (*Tree, error) {
	return DefaultBuilder().Build(Tokenize(raw))
}

package report

// Query selects groups among the root's children and names the fields to
// read from each of them.
type Query struct {
	// Group is the key of the top-level records to inspect, e.g. "host".
	Group string
	// IDField is the child whose value is collected, e.g. "mac".
	IDField string
	// FlagField is the child deciding whether the group counts, e.g. "active".
	FlagField string
	// FlagValue is the exact, case-sensitive value FlagField must hold.
	FlagValue string
}

// DefaultQuery collects the MAC address of every active hotspot host.
var DefaultQuery = Query{Group: "host", IDField: "mac", FlagField: "active", FlagValue: "yes"}

// ExtractActive returns the IDField value of every top-level q.Group record
// whose FlagField equals q.FlagValue. A selected group without either field
// fails the whole extraction with a *FieldError; duplicate ids collapse.
func ExtractActive(t *Tree, q Query) (Set, error) {
	result := make(Set)
	group := 0
	for _, id := range t.Children(Root) {
		if t.Key(id) != q.Group {
			continue
		}
		idField, ok := t.Child(id, q.IDField)
		if !ok {
			return nil, &FieldError{Field: q.IDField, Group: group}
		}
		flag, ok := t.Child(id, q.FlagField)
		if !ok {
			return nil, &FieldError{Field: q.FlagField, Group: group}
		}
		if t.Value(flag) == q.FlagValue {
			result.Add(t.Value(idField))
		}
		group++
	}
	return result, nil
}

// HostsOnline parses a `show ip hotspot` dump and returns the MAC addresses
// of the hosts that are currently active.
func HostsOnline(raw string) (Set, error) {
	tree, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return ExtractActive(tree, DefaultQuery)
}

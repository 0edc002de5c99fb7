package schema

// Node is a compiled schema. Nodes are immutable once compiled and may be
// shared between goroutines.
type Node struct {
	// Location is the JSON pointer of the node within the schema document.
	Location   string
	Format     string
	Properties []Property
	Required   []string
	AnyOf      []*Node
	Types      TypeSet
	// False marks the boolean schema false.
	False bool
	// CheckFormat is set when Format is asserted rather than annotated.
	CheckFormat bool
}

// Property pairs a property name with its schema.
type Property struct {
	Node *Node
	Name string
}

package world

import "strings"

// Group is a named set of permission nodes. A node is a dot-separated path
// such as "commandbook.give.stacks". A node segment of "*" grants everything
// at and below that point, so "commandbook.give.*" grants
// "commandbook.give.infinite" and "commandbook.*" grants every CommandBook
// permission.
type Group struct {
	Name  string
	nodes [][]string
}

// NewGroup creates a Group that grants the given nodes.
func NewGroup(name string, nodes ...string) *Group {
	g := &Group{Name: name}
	for _, n := range nodes {
		g.Add(n)
	}
	return g
}

// Add grants node to the group.
func (g *Group) Add(node string) {
	g.nodes = append(g.nodes, strings.Split(node, "."))
}

// Has returns whether the group grants perm.
func (g *Group) Has(perm string) bool {
	if perm == "" {
		return true
	}

	split := strings.Split(perm, ".")
	for _, template := range g.nodes {
		if nodeMatches(split, template) {
			return true
		}
	}
	return false
}

func nodeMatches(perm []string, template []string) bool {
	for i := 0; i < len(perm) && i < len(template); i++ {
		if template[i] == "*" {
			return true
		} else if perm[i] != template[i] {
			return false
		}
	}

	return len(perm) == len(template)
}

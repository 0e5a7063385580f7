package tetraquery

import "github.com/solarlune/tetraquery/scene"

// nodeSet is an insertion-ordered set of nodes.
type nodeSet struct {
	nodes []*scene.Node
	index map[*scene.Node]struct{}
}

func newNodeSet(nodes ...*scene.Node) *nodeSet {
	s := &nodeSet{index: make(map[*scene.Node]struct{}, len(nodes))}
	for _, n := range nodes {
		s.add(n)
	}
	return s
}

func (s *nodeSet) add(n *scene.Node) bool {
	if _, ok := s.index[n]; ok {
		return false
	}
	s.index[n] = struct{}{}
	s.nodes = append(s.nodes, n)
	return true
}

func (s *nodeSet) has(n *scene.Node) bool {
	_, ok := s.index[n]
	return ok
}

func (s *nodeSet) len() int {
	return len(s.nodes)
}

// difference returns the nodes of s that aren't in other, in s's order.
func (s *nodeSet) difference(other *nodeSet) []*scene.Node {
	var out []*scene.Node
	for _, n := range s.nodes {
		if !other.has(n) {
			out = append(out, n)
		}
	}
	return out
}

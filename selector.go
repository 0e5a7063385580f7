package tetraquery

import (
	"strings"

	"github.com/solarlune/tetraquery/scene"
)

type selectorKind int

const (
	selectorText selectorKind = iota
	selectorNodes
)

// Selector is what a query runs: either selector text or a fixed list of
// nodes, which queries wrap as-is.
type Selector struct {
	kind  selectorKind
	text  string
	nodes []*scene.Node
}

// S returns a Selector for selector text, such as "#hero", ".red.box",
// ".hat .feather", "#a, .b" or "*".
func S(text string) Selector {
	return Selector{kind: selectorText, text: text}
}

// N returns a Selector wrapping the given nodes.
func N(nodes ...*scene.Node) Selector {
	return Selector{kind: selectorNodes, nodes: nodes}
}

// IsNodes reports whether the Selector wraps nodes rather than text.
func (s Selector) IsNodes() bool {
	return s.kind == selectorNodes
}

func (s Selector) String() string {
	if s.kind == selectorNodes {
		names := make([]string, 0, len(s.nodes))
		for _, n := range s.nodes {
			if n != nil {
				names = append(names, n.Name())
			}
		}
		return "[" + strings.Join(names, ", ") + "]"
	}
	return s.text
}

package tetraquery

import (
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/solarlune/tetraquery/scene"
)

// Select runs the selector against the whole tree of the Query.
func (q *Query) Select(sel Selector) (*Result, error) {
	return q.SelectIn(sel, q.root)
}

// MustSelect is like Select with selector text but panics if the selector
// is invalid. It simplifies selecting with constant selectors.
func (q *Query) MustSelect(text string) *Result {
	r, err := q.Select(S(text))
	if err != nil {
		panic(err)
	}
	return r
}

// SelectIn runs the selector against the subtree of context:
//   - "*" selects every node of the subtree, context included, in
//     pre-order.
//   - A node Selector is wrapped as-is.
//   - Text with commas is split into parts which are each selected, the
//     results being merged in order without duplicates.
//   - Any other text is a whitespace separated descendant chain. The first
//     token is tested against the whole subtree, context included; each
//     following token is tested against every node strictly below a node
//     matched by the previous one.
//
// Empty selectors, and empty parts of comma lists, are invalid.
func (q *Query) SelectIn(sel Selector, context *scene.Node) (*Result, error) {
	if context == nil {
		context = q.root
	}

	nodes, err := q.query(sel, context)
	if err != nil {
		return nil, err
	}
	return q.wrap(nodes...), nil
}

func (q *Query) query(sel Selector, context *scene.Node) ([]*scene.Node, error) {
	if sel.kind == selectorNodes {
		instrumentQuery("nodes")
		return append([]*scene.Node(nil), sel.nodes...), nil
	}

	text := sel.text

	if strings.TrimSpace(text) == "*" {
		instrumentQuery("wildcard")
		var all []*scene.Node
		context.Traverse(func(n *scene.Node) {
			all = append(all, n)
		})
		return all, nil
	}

	if strings.Contains(text, ",") {
		instrumentQuery("union")
		merged := newNodeSet()

		for _, part := range strings.Split(text, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				return nil, errors.New("empty selector in list").
					WithType(ErrTypeInvalidSelector).
					WithTag("selector", text)
			}

			nodes, err := q.query(S(part), context)
			if err != nil {
				return nil, err
			}
			for _, n := range nodes {
				merged.add(n)
			}
		}
		return merged.nodes, nil
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, errors.New("empty selector").
			WithType(ErrTypeInvalidSelector).
			WithTag("selector", text)
	}

	for _, token := range tokens {
		if !ValidToken(token) {
			return nil, errors.New("invalid selector token").
				WithType(ErrTypeInvalidSelector).
				WithTag("selector", text).
				WithTag("token", token)
		}
	}

	instrumentQuery("chain")

	current := []*scene.Node{context}

	for i, token := range tokens {
		next := newNodeSet()

		test := func(n *scene.Node) {
			if q.Matches(n, token) {
				next.add(n)
			}
		}

		for _, member := range current {
			if i == 0 {
				member.Traverse(test)
				continue
			}
			for _, child := range member.Children() {
				child.Traverse(test)
			}
		}

		current = next.nodes
	}

	return current, nil
}

package tetraquery

import "github.com/solarlune/tetraquery/scene"

// Matches reports whether the node satisfies a single compound selector
// token such as "#hero", ".red.box" or "#hero.box". The node must have
// metadata, the token must name an id or at least one class, a named id
// must equal the node's id and every named class must be present.
// Comparison is case-sensitive.
func (q *Query) Matches(node *scene.Node, token string) bool {
	m, ok := q.meta[node]
	if !ok {
		return false
	}

	want := ParseName(token)
	if want.IsEmpty() {
		return false
	}

	if want.ID != "" && want.ID != m.id {
		return false
	}

	for _, cls := range want.Classes {
		if !m.hasClass(cls) {
			return false
		}
	}

	return true
}

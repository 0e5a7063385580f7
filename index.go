package tetraquery

import (
	"regexp"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/solarlune/tetraquery/scene"
)

var validName = regexp.MustCompile(`^\w+$`)

// nodeMeta is the live id and class set of a scanned node.
type nodeMeta struct {
	id      string
	classes []string
}

func (m *nodeMeta) hasClass(cls string) bool {
	for _, c := range m.classes {
		if c == cls {
			return true
		}
	}
	return false
}

// NodeMetadata is the id and classes a Query holds for a node.
type NodeMetadata struct {
	ID      string
	Classes []string
}

// Metadata returns a copy of the metadata held for the node, and false if
// the node was never scanned or mutated through a Result.
func (q *Query) Metadata(node *scene.Node) (NodeMetadata, bool) {
	m, ok := q.meta[node]
	if !ok {
		return NodeMetadata{}, false
	}
	return NodeMetadata{
		ID:      m.id,
		Classes: append([]string(nil), m.classes...),
	}, true
}

// Scan indexes the node and all of its descendants. Every node with a
// non-empty label gets its id and classes parsed and indexed; rescanning a
// node first drops the index entries of its previous metadata.
func (q *Query) Scan(node *scene.Node) {
	if node == nil {
		return
	}

	node.Traverse(func(n *scene.Node) {
		q.forget(n)

		label := n.Label()
		if label == "" {
			return
		}

		name := ParseName(label)
		m := &nodeMeta{id: name.ID}

		if name.ID != "" {
			q.indexID(name.ID, n)
		}

		for _, cls := range name.Classes {
			if m.hasClass(cls) {
				continue
			}
			m.classes = append(m.classes, cls)
			q.indexClass(cls, n)
		}

		q.meta[n] = m
	})
}

// IDs returns the nodes indexed under the id, in indexing order.
func (q *Query) IDs(id string) []*scene.Node {
	return append([]*scene.Node(nil), q.idMap[id]...)
}

// ClassMembers returns the nodes indexed under the class, in indexing
// order.
func (q *Query) ClassMembers(cls string) []*scene.Node {
	return append([]*scene.Node(nil), q.classMap[cls]...)
}

// forget removes the node's metadata and every index entry it produced.
func (q *Query) forget(n *scene.Node) {
	m, ok := q.meta[n]
	if !ok {
		return
	}
	if m.id != "" {
		q.unindexID(m.id, n)
	}
	for _, cls := range m.classes {
		q.unindexClass(cls, n)
	}
	delete(q.meta, n)
}

func (q *Query) ensureMeta(n *scene.Node) *nodeMeta {
	m, ok := q.meta[n]
	if !ok {
		m = &nodeMeta{}
		q.meta[n] = m
	}
	return m
}

func (q *Query) indexID(id string, n *scene.Node) {
	q.idMap[id] = append(q.idMap[id], n)
}

func (q *Query) unindexID(id string, n *scene.Node) {
	q.idMap[id] = removeOne(q.idMap[id], n)
	if len(q.idMap[id]) == 0 {
		delete(q.idMap, id)
	}
}

func (q *Query) indexClass(cls string, n *scene.Node) {
	q.classMap[cls] = append(q.classMap[cls], n)
}

func (q *Query) unindexClass(cls string, n *scene.Node) {
	q.classMap[cls] = removeOne(q.classMap[cls], n)
	if len(q.classMap[cls]) == 0 {
		delete(q.classMap, cls)
	}
}

// setID changes the node's id, keeping the id index and the label in
// sync. An empty id removes it.
func (q *Query) setID(n *scene.Node, id string) {
	if id != "" && !validName.MatchString(id) {
		logs.Warn(errors.New("invalid id").
			WithType(ErrTypeInvalidSelector).
			WithTag("id", id))
		return
	}

	m := q.ensureMeta(n)
	if m.id == id {
		return
	}

	if m.id != "" {
		q.unindexID(m.id, n)
	}

	m.id = id
	n.SetLabel(relabelID(n.Label(), id))

	if id != "" {
		q.indexID(id, n)
	}
}

func (q *Query) addClass(n *scene.Node, cls string) {
	if !validName.MatchString(cls) {
		logs.Warn(errors.New("invalid class").
			WithType(ErrTypeInvalidSelector).
			WithTag("class", cls))
		return
	}

	m := q.ensureMeta(n)
	if m.hasClass(cls) {
		return
	}

	m.classes = append(m.classes, cls)
	n.SetLabel(strings.TrimSpace(n.Label() + " ." + cls))
	q.indexClass(cls, n)
}

func (q *Query) removeClass(n *scene.Node, cls string) {
	m, ok := q.meta[n]
	if !ok || !m.hasClass(cls) {
		return
	}

	for i, c := range m.classes {
		if c == cls {
			m.classes = append(m.classes[:i], m.classes[i+1:]...)
			break
		}
	}

	n.SetLabel(stripClass(n.Label(), cls))
	q.unindexClass(cls, n)
}

// stripClass removes every .cls tag of the label with the whitespace before
// it. Classes are deduplicated per node, so a duplicate left in the label
// would bring the class back on the next scan.
func stripClass(label, cls string) string {
	var b strings.Builder
	last := 0

	for _, loc := range classPattern.FindAllStringSubmatchIndex(label, -1) {
		if label[loc[2]:loc[3]] != cls {
			continue
		}
		b.WriteString(strings.TrimRight(label[last:loc[0]], " \t"))
		last = loc[1]
	}
	b.WriteString(label[last:])

	return strings.TrimSpace(b.String())
}

// relabelID replaces the first #id of the label, or prepends one if there
// is none.
func relabelID(label, id string) string {
	loc := idPattern.FindStringIndex(label)

	switch {
	case loc == nil && id == "":
		return label
	case loc == nil:
		return strings.TrimSpace("#" + id + " " + label)
	case id == "":
		return strings.TrimSpace(label[:loc[0]] + strings.TrimLeft(label[loc[1]:], " \t"))
	default:
		return label[:loc[0]] + "#" + id + label[loc[1]:]
	}
}

// removeOne removes the first occurrence of n from nodes.
func removeOne(nodes []*scene.Node, n *scene.Node) []*scene.Node {
	for i, node := range nodes {
		if node == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

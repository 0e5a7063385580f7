// Package tetraquery locates and manipulates nodes of a scene graph with
// CSS-like selectors, and attaches pointer callbacks to them.
//
// Nodes are identified through their label, a metadata string such as
// "#player .enemy .boss" carrying an optional id and any number of classes.
// A Query scans a tree once, indexes ids and classes, and then answers
// selectors like "#player", ".enemy.boss", ".hat .feather" or
// "#a, .b" with a Result that can be inspected and mutated in bulk:
//
//	q := tetraquery.New(root)
//	q.MustSelect(".enemy").SetPosition(0, 1, 0).AddClass("alerted")
//
// Pointer events are delivered through the Query's Dispatcher, which
// ray-casts at most once per pointer position and frame and synthesizes
// mouseenter / mouseleave from consecutive hit sets.
//
// Everything in this package is meant to be used from a single goroutine,
// usually the game loop's.
package tetraquery

import (
	"github.com/solarlune/tetraquery/scene"
)

// Query is the root of the selector system. It owns the id and class
// indexes of a scene, its geometry loaders, and the pointer event
// dispatcher.
type Query struct {
	root       *scene.Node
	meta       map[*scene.Node]*nodeMeta
	idMap      map[string][]*scene.Node
	classMap   map[string][]*scene.Node
	loaders    map[string]LoaderFunc
	events     *registry
	dispatcher *Dispatcher
}

// New creates a Query rooted at the given node and scans it.
func New(root *scene.Node) *Query {
	q := &Query{
		root:     root,
		meta:     map[*scene.Node]*nodeMeta{},
		idMap:    map[string][]*scene.Node{},
		classMap: map[string][]*scene.Node{},
		loaders:  map[string]LoaderFunc{},
		events:   newRegistry(),
	}
	q.dispatcher = newDispatcher(q)
	q.Scan(root)
	return q
}

// Root returns the node the Query was created with.
func (q *Query) Root() *scene.Node {
	return q.root
}

// Dispatcher returns the pointer event dispatcher of the Query.
func (q *Query) Dispatcher() *Dispatcher {
	return q.dispatcher
}

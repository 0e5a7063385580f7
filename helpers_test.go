package tetraquery

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/solarlune/tetraquery/scene"
)

// newTestNode returns a node named and labeled after label.
func newTestNode(name, label string, children ...*scene.Node) *scene.Node {
	n := scene.NewNode(name)
	n.SetLabel(label)
	n.AddChildren(children...)
	return n
}

// captureLogs redirects log entries to the returned builder.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()

	var b strings.Builder
	logs.SetInlineEncoder()
	logs.SetLogger(func(e logs.Entry) {
		fmt.Fprint(&b, e)
	})
	return &b
}

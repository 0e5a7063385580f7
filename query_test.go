package tetraquery

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/solarlune/tetraquery/scene"
	"github.com/stretchr/testify/require"
)

// newTestScene builds:
//
//	root
//	├── hero   "#hero .player .box"
//	│   └── hat   ".hat .red"
//	│       └── feather ".feather .red"
//	├── enemy1 ".enemy .red .box"
//	│   └── eye ".eye"
//	└── enemy2 ".enemy .box"
func newTestScene() (*Query, map[string]*scene.Node) {
	feather := newTestNode("feather", ".feather .red")
	hat := newTestNode("hat", ".hat .red", feather)
	hero := newTestNode("hero", "#hero .player .box", hat)
	eye := newTestNode("eye", ".eye")
	enemy1 := newTestNode("enemy1", ".enemy .red .box", eye)
	enemy2 := newTestNode("enemy2", ".enemy .box")
	root := newTestNode("root", "", hero, enemy1, enemy2)

	return New(root), map[string]*scene.Node{
		"root":    root,
		"hero":    hero,
		"hat":     hat,
		"feather": feather,
		"enemy1":  enemy1,
		"eye":     eye,
		"enemy2":  enemy2,
	}
}

func TestScanIndexesLabels(t *testing.T) {
	cube := newTestNode("Cube", "#cube .red .box")
	q := New(newTestNode("root", "", cube))

	require.Equal(t, []*scene.Node{cube}, q.IDs("cube"))
	require.Equal(t, []*scene.Node{cube}, q.ClassMembers("red"))
	require.Equal(t, []*scene.Node{cube}, q.ClassMembers("box"))

	require.Equal(t, []*scene.Node{cube}, q.MustSelect(".red.box").Objects())
	require.Equal(t, []*scene.Node{cube}, q.MustSelect("#cube").Objects())
	require.Empty(t, q.MustSelect(".green").Objects())
}

func TestScanSkipsUnlabeledNodes(t *testing.T) {
	q, nodes := newTestScene()

	_, ok := q.Metadata(nodes["root"])
	require.False(t, ok)

	meta, ok := q.Metadata(nodes["hero"])
	require.True(t, ok)
	require.Equal(t, NodeMetadata{ID: "hero", Classes: []string{"player", "box"}}, meta)
}

func TestRescanDoesNotDuplicate(t *testing.T) {
	n := newTestNode("n", "#a .x .x")
	q := New(newTestNode("root", "", n))
	q.Scan(n)
	q.Scan(n)

	require.Equal(t, []*scene.Node{n}, q.IDs("a"))
	require.Equal(t, []*scene.Node{n}, q.ClassMembers("x"))

	n.SetLabel(".y")
	q.Scan(n)
	require.Empty(t, q.IDs("a"))
	require.Empty(t, q.ClassMembers("x"))
	require.Equal(t, []*scene.Node{n}, q.ClassMembers("y"))

	n.SetLabel("")
	q.Scan(n)
	require.Empty(t, q.ClassMembers("y"))
	_, ok := q.Metadata(n)
	require.False(t, ok)
}

func TestMatches(t *testing.T) {
	q, nodes := newTestScene()
	hero := nodes["hero"]

	tests := []struct {
		token string
		want  bool
	}{
		{"#hero", true},
		{"#hero.box", true},
		{".player.box", true},
		{".box.player", true},
		{".player.red", false},
		{"#villain", false},
		{"#villain.box", false},
		{"", false},
		{"hero", false},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			require.Equal(t, test.want, q.Matches(hero, test.token))
		})
	}

	require.False(t, q.Matches(nodes["root"], ".box"))
}

func TestSelectWildcard(t *testing.T) {
	q, nodes := newTestScene()

	all := q.MustSelect("*")
	require.Equal(t, 7, all.Len())
	require.Equal(t, nodes["root"], all.Objects()[0])

	sub, err := q.SelectIn(S(" * "), nodes["hero"])
	require.NoError(t, err)
	require.Equal(t, []*scene.Node{nodes["hero"], nodes["hat"], nodes["feather"]}, sub.Objects())
}

func TestSelectClass(t *testing.T) {
	q, nodes := newTestScene()

	require.Equal(t,
		[]*scene.Node{nodes["hat"], nodes["feather"], nodes["enemy1"]},
		q.MustSelect(".red").Objects(),
	)
	require.Equal(t,
		[]*scene.Node{nodes["enemy1"], nodes["enemy2"]},
		q.MustSelect(".enemy.box").Objects(),
	)
}

func TestSelectChainExcludesAncestor(t *testing.T) {
	q, nodes := newTestScene()

	// hat is .red but can't be below itself.
	require.Equal(t, []*scene.Node{nodes["feather"]}, q.MustSelect(".red .red").Objects())
	require.Equal(t, []*scene.Node{nodes["feather"]}, q.MustSelect("#hero .hat .feather").Objects())
	require.Equal(t, []*scene.Node{nodes["hat"], nodes["feather"]}, q.MustSelect("#hero .red").Objects())
	require.Empty(t, q.MustSelect(".enemy #hero").Objects())
}

func TestSelectUnionKeepsOrder(t *testing.T) {
	q, nodes := newTestScene()

	r := q.MustSelect(".eye, #hero, .red")
	require.Equal(t, []*scene.Node{
		nodes["eye"],
		nodes["hero"],
		nodes["hat"],
		nodes["feather"],
		nodes["enemy1"],
	}, r.Objects())
}

func TestSelectNodes(t *testing.T) {
	q, nodes := newTestScene()
	outside := scene.NewNode("outside")

	r, err := q.Select(N(nodes["eye"], outside))
	require.NoError(t, err)
	require.Equal(t, []*scene.Node{nodes["eye"], outside}, r.Objects())
}

func TestSelectInvalid(t *testing.T) {
	q, _ := newTestScene()

	for _, sel := range []string{
		"",
		"   ",
		".a,",
		", .a",
		".a,,.b",
		"cube",
		"red",
		"#",
		".",
		"#a *",
		"* .a",
		"#hero.",
		".red-box",
		"#hero, box",
	} {
		t.Run(sel, func(t *testing.T) {
			_, err := q.Select(S(sel))
			require.Error(t, err)
			require.True(t, errors.IsType(err, ErrTypeInvalidSelector))
		})
	}

	require.Panics(t, func() { q.MustSelect("") })
}

func TestFindConcatenatesPerContext(t *testing.T) {
	q, nodes := newTestScene()

	found, err := q.MustSelect(".red").Find(S(".red"))
	require.NoError(t, err)

	// hat finds itself and feather, feather and enemy1 find themselves.
	require.Equal(t, []*scene.Node{nodes["hat"], nodes["feather"], nodes["feather"], nodes["enemy1"]}, found.Objects())
}

func BenchmarkSelect(b *testing.B) {
	root := scene.NewNode("root")
	for i := 0; i < 100; i++ {
		parent := newTestNode("group", ".group")
		for j := 0; j < 10; j++ {
			parent.AddChildren(newTestNode("item", ".item .red"))
		}
		root.AddChildren(parent)
	}
	q := New(root)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.MustSelect(".group .item.red")
	}
}

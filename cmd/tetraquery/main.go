package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
	"github.com/solarlune/tetraquery"
	"github.com/solarlune/tetraquery/scene"
)

// The tetraquery version number. Set at build.
var version = "v0.1.0"

type config struct {
	File          string `cli:""        env:"TETRAQUERY_FILE"           help:"The glTF file to load."`
	Selector      string `cli:""        env:"TETRAQUERY_SELECTOR"       help:"The selector to run, such as \"#hero .hat\"."`
	Format        string `cli:""        env:"TETRAQUERY_FORMAT"         help:"Output format (json|tree)."`
	LabelProperty string `cli:",hidden" env:"TETRAQUERY_LABEL_PROPERTY" help:"The custom property holding node labels."`
	LogLevel      string `cli:""        env:"TETRAQUERY_LOG_LEVEL"      help:"Log level (debug|info|warning|error)."`
	LogIndent     bool   `cli:""        env:"TETRAQUERY_LOG_INDENT"     help:"Indent logs."`
	Version       bool   `cli:""        env:"-"                         help:"Show version."`
	Help          bool   `cli:""        env:"-"                         help:"Show help."`
}

func main() {
	conf := config{
		Selector:      "*",
		Format:        "json",
		LabelProperty: scene.DefaultGLTFLoadOptions().LabelProperty,
		LogLevel:      logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Loads a glTF file and prints the nodes matching a selector.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	if err := run(ctx, conf, os.Stdout); err != nil {
		logs.Fatal(err)
	}
}

func validateConfig(conf config) error {
	if conf.File == "" {
		return errors.New("no file given").
			WithType(tetraquery.ErrTypeConfiguration)
	}
	if conf.Format != "json" && conf.Format != "tree" {
		return errors.New("unknown output format").
			WithType(tetraquery.ErrTypeConfiguration).
			WithTag("format", conf.Format)
	}
	return nil
}

func run(ctx context.Context, conf config, w io.Writer) error {
	opts := scene.DefaultGLTFLoadOptions()
	opts.LabelProperty = conf.LabelProperty

	root := scene.NewNode("root")
	q := tetraquery.New(root)
	q.AddLoader("gltf", tetraquery.GLTFLoader(opts))

	level, err := q.LoadGeometry(ctx, "gltf", conf.File)
	if err != nil {
		return err
	}
	root.AddChildren(level)

	res, err := q.SelectIn(tetraquery.S(conf.Selector), level)
	if err != nil {
		return err
	}

	logs.WithTag("file", conf.File).
		WithTag("selector", conf.Selector).
		WithTag("matches", res.Len()).
		Debug("selector run")

	if conf.Format == "tree" {
		return writeTree(w, res)
	}
	return writeJSON(w, res)
}

type nodeOutput struct {
	Name     string         `json:"name"`
	Path     string         `json:"path"`
	Label    string         `json:"label,omitempty"`
	ID       string         `json:"id,omitempty"`
	Classes  []string       `json:"classes,omitempty"`
	Position [3]float64     `json:"position"`
	Visible  bool           `json:"visible"`
	Material string         `json:"material,omitempty"`
	Props    map[string]any `json:"properties,omitempty"`
}

func writeJSON(w io.Writer, res *tetraquery.Result) error {
	q := res.Query()
	out := make([]nodeOutput, 0, res.Len())

	res.Each(func(i int, n *scene.Node) {
		meta, _ := q.Metadata(n)
		pos := n.WorldPosition()

		o := nodeOutput{
			Name:     n.Name(),
			Path:     n.Path(),
			Label:    n.Label(),
			ID:       meta.ID,
			Classes:  meta.Classes,
			Position: [3]float64{pos.X, pos.Y, pos.Z},
			Visible:  n.Visible(),
		}
		if mat := n.Material(); mat != nil {
			o.Material = mat.Name
		}
		if props := n.Properties(); props.Len() > 0 {
			o.Props = make(map[string]any, props.Len())
			for _, name := range props.Names() {
				o.Props[name] = props.Get(name)
			}
		}
		out = append(out, o)
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTree(w io.Writer, res *tetraquery.Result) error {
	for _, n := range res.Objects() {
		if _, err := io.WriteString(w, n.HierarchyAsString()); err != nil {
			return err
		}
	}
	return nil
}

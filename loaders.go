package tetraquery

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/solarlune/tetraquery/scene"
)

// LoaderFunc produces a node tree from a source, such as a file path or an
// URL.
type LoaderFunc func(ctx context.Context, src string) (*scene.Node, error)

// AddLoader registers fn as the loader for the type tag, replacing any
// previous one.
func (q *Query) AddLoader(typeTag string, fn LoaderFunc) {
	if fn == nil {
		delete(q.loaders, typeTag)
		return
	}
	q.loaders[typeTag] = fn
}

// LoadGeometry loads src with the loader registered for the type tag and
// scans the loaded tree. The tree isn't added to the scene.
//
// It returns an error of type ErrTypeNoLoaderRegistered, without invoking
// any loader, when no loader is registered for the type tag.
func (q *Query) LoadGeometry(ctx context.Context, typeTag, src string) (*scene.Node, error) {
	n, err := q.load(ctx, typeTag, src)
	if err != nil {
		return nil, err
	}
	q.Scan(n)
	return n, nil
}

func (q *Query) loader(typeTag string) (LoaderFunc, error) {
	fn, ok := q.loaders[typeTag]
	if !ok {
		return nil, errors.New("no loader registered").
			WithType(ErrTypeNoLoaderRegistered).
			WithTag("type", typeTag)
	}
	return fn, nil
}

func (q *Query) load(ctx context.Context, typeTag, src string) (*scene.Node, error) {
	fn, err := q.loader(typeTag)
	if err != nil {
		return nil, err
	}
	return runLoader(ctx, fn, typeTag, src)
}

// runLoader doesn't touch the Query so it can run on another goroutine.
func runLoader(ctx context.Context, fn LoaderFunc, typeTag, src string) (*scene.Node, error) {
	start := time.Now()
	defer instrumentGeometryLoad(typeTag, start)

	n, err := fn(ctx, src)
	if err == nil && n == nil {
		err = errors.New("loader returned no node")
	}
	if err != nil {
		err = errors.New("loading geometry failed").
			WithType(ErrTypeLoadFailed).
			WithTag("type", typeTag).
			WithTag("src", src).
			Wrap(err)
		instrumentGeometryLoadError(typeTag, err)
		return nil, err
	}

	logs.WithTag("type", typeTag).
		WithTag("src", src).
		WithTag("duration", time.Since(start)).
		Debug("geometry loaded")
	return n, nil
}

// PendingLoad is a geometry load running in the background.
type PendingLoad struct {
	q    *Query
	done chan struct{}
	node *scene.Node
	err  error

	scanned bool
}

// LoadGeometryAsync starts loading src on another goroutine. The loader
// must not use the Query. The loaded tree is scanned by Wait, on the
// caller's goroutine.
//
// It returns an error of type ErrTypeNoLoaderRegistered, without invoking
// any loader, when no loader is registered for the type tag.
func (q *Query) LoadGeometryAsync(ctx context.Context, typeTag, src string) (*PendingLoad, error) {
	fn, err := q.loader(typeTag)
	if err != nil {
		return nil, err
	}

	p := &PendingLoad{
		q:    q,
		done: make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		p.node, p.err = runLoader(ctx, fn, typeTag, src)
	}()

	return p, nil
}

// Done returns a channel closed when the loader has returned.
func (p *PendingLoad) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load completes or ctx is done, then scans and
// returns the loaded tree.
func (p *PendingLoad) Wait(ctx context.Context) (*scene.Node, error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if p.err != nil {
		return nil, p.err
	}
	if !p.scanned {
		p.q.Scan(p.node)
		p.scanned = true
	}
	return p.node, nil
}

// GLTFLoader returns a loader reading glTF files from the path given as
// source and returning the exported scene's root. A nil options uses
// scene.DefaultGLTFLoadOptions.
func GLTFLoader(opts *scene.GLTFLoadOptions) LoaderFunc {
	return func(ctx context.Context, src string) (*scene.Node, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lib, err := scene.LoadGLTFFile(src, opts)
		if err != nil {
			return nil, err
		}
		if lib.ExportedScene == nil {
			return nil, errors.New("gltf file has no exported scene")
		}
		return lib.ExportedScene, nil
	}
}

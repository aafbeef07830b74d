package load

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/signadot/idlayer/debug"
	"github.com/signadot/idlayer/ir"
	"github.com/signadot/idlayer/layer"

	"golang.org/x/sync/errgroup"
)

// LayerTypeKey is a top level key a document may use to declare its own
// layer type. It is removed from the loaded tree.
const LayerTypeKey = "layer_type"

// Document loads data as a layer document. The layer type is, in order of
// preference, the document's own layer_type key, layerType, "json-patch"
// for a top level list, and "idl".
func Document(source, layerType string, data []byte) (*layer.Document, error) {
	tree, err := Bytes(source, data)
	if err != nil {
		return nil, err
	}
	if lt, ok := ir.GetString(tree, LayerTypeKey); ok {
		layerType = lt
		tree = withoutField(tree, LayerTypeKey)
	}
	if layerType == "" {
		layerType = layer.IDLLayer
		if tree.Type == ir.ArrayType {
			layerType = layer.JSONPatchLayer
		}
	}
	return layer.NewDocument(tree, layerType, source), nil
}

func withoutField(tree *ir.Node, key string) *ir.Node {
	var kvs []ir.KeyVal
	var origins []*ir.Origin
	for i, kv := range tree.KeyVals() {
		if kv.Key == key {
			continue
		}
		kvs = append(kvs, kv)
		origins = append(origins, tree.Fields[i].Origin)
	}
	res := ir.FromKeyVals(kvs).WithOrigin(tree.Origin)
	for i, o := range origins {
		res.Fields[i].Origin = o
	}
	return res
}

type FilesConfig struct {
	LayerType string
	Jobs      int
}

type FilesOpt func(*FilesConfig)

// DefaultLayerType is used for files which do not declare a layer type.
func DefaultLayerType(lt string) FilesOpt {
	return func(c *FilesConfig) { c.LayerType = lt }
}

func FilesJobs(n int) FilesOpt {
	return func(c *FilesConfig) { c.Jobs = n }
}

// Files loads paths concurrently and returns their documents ranked in
// argument order. A path of "-" reads stdin.
func Files(ctx context.Context, paths []string, opts ...FilesOpt) ([]*layer.Document, error) {
	cfg := &FilesConfig{Jobs: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(cfg)
	}
	docs := make([]*layer.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(cfg.Jobs, len(paths))))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := readPath(path)
			if err != nil {
				return err
			}
			doc, err := Document(path, cfg.LayerType, data)
			if err != nil {
				return err
			}
			if debug.Load() {
				debug.Logf("loaded %s as %s layer\n", path, doc.LayerType)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return layer.Ranked(docs...), nil
}

func readPath(path string) ([]byte, error) {
	if path == "-" {
		d, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("could not read stdin: %w", err)
		}
		return d, nil
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return d, nil
}

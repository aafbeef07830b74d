package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/idlayer"
	"github.com/signadot/idlayer/encode"
	"github.com/signadot/idlayer/layer"
	"github.com/signadot/idlayer/load"
	"github.com/signadot/idlayer/validate"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

// ConfigEnv names the default config file.
const ConfigEnv = "IDLAYER_CONFIG"

type MainConfig struct {
	Color bool `cli:"name=color desc='output diagnostics and diffs with color'"`
	J     bool `cli:"name=j aliases=json desc='output in json'"`
	Y     bool `cli:"name=y aliases=yaml desc='output in yaml'"`

	LayerType string `cli:"name=t aliases=type desc='layer type of files which do not declare one'"`
	Jobs      int    `cli:"name=jobs desc='maximum concurrency of each stage'"`
	Strict    bool   `cli:"name=strict desc='warn when a layer changes the type of an element'"`
	Remove    bool   `cli:"name=remove desc='let layers remove elements with $remove markers'"`

	OutFormat *encode.Format

	ConfigFile string
	File       *FileConfig

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// FileConfig is the content of a config file.
type FileConfig struct {
	Strict bool `yaml:"strict,omitempty"`
	// Removal is "none" or "marker".
	Removal    string   `yaml:"removal,omitempty"`
	MaxDepth   int      `yaml:"maxDepth,omitempty"`
	NamedLists []string `yaml:"namedLists,omitempty"`
	TypeKeys   []string `yaml:"typeKeys,omitempty"`
	// Rules are registry rules keyed by layer type.
	Rules map[string]validate.Rule `yaml:"rules,omitempty"`
}

func ReadFileConfig(path string) (*FileConfig, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	return ParseFileConfig(d)
}

func ParseFileConfig(d []byte) (*FileConfig, error) {
	res := &FileConfig{}
	if err := yaml.UnmarshalWithOptions(d, res, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	switch res.Removal {
	case "", layer.RemovalNone.String(), layer.RemovalMarker.String():
	default:
		return nil, fmt.Errorf("unknown removal policy %q", res.Removal)
	}
	return res, nil
}

func (cfg *MainConfig) configOpt(_ *cli.Context, a string) (any, error) {
	cfg.ConfigFile = a
	return a, nil
}

func (cfg *MainConfig) fmtFunc(fp **encode.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

// loadConfig reads the config file named by -config or the environment,
// if any.
func (cfg *MainConfig) loadConfig() error {
	path := cfg.ConfigFile
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		cfg.File = &FileConfig{}
		return nil
	}
	fc, err := ReadFileConfig(path)
	if err != nil {
		return err
	}
	cfg.File = fc
	return nil
}

func (cfg *MainConfig) fileConfig() *FileConfig {
	if cfg.File == nil {
		return &FileConfig{}
	}
	return cfg.File
}

func (cfg *MainConfig) mergeOpts() []layer.MergeOpt {
	fc := cfg.fileConfig()
	res := []layer.MergeOpt{
		layer.Strict(cfg.Strict || fc.Strict),
		layer.NamedLists(fc.NamedLists...),
		layer.TypeKeys(fc.TypeKeys...),
	}
	if cfg.Remove || fc.Removal == layer.RemovalMarker.String() {
		res = append(res, layer.Removal(layer.RemovalMarker))
	}
	if fc.MaxDepth > 0 {
		res = append(res, layer.MaxDepth(fc.MaxDepth))
	}
	if cfg.Jobs > 0 {
		res = append(res, layer.Jobs(cfg.Jobs))
	}
	return res
}

func (cfg *MainConfig) runOpts() ([]idlayer.Option, error) {
	res := []idlayer.Option{
		idlayer.MergeOpts(cfg.mergeOpts()...),
		idlayer.Jobs(cfg.Jobs),
	}
	if rules := cfg.fileConfig().Rules; len(rules) != 0 {
		reg, err := validate.NewRuleRegistry(rules)
		if err != nil {
			return nil, err
		}
		res = append(res, idlayer.WithRegistry(reg))
	}
	return res, nil
}

func (cfg *MainConfig) loadOpts() []load.FilesOpt {
	res := []load.FilesOpt{load.DefaultLayerType(cfg.LayerType)}
	if cfg.Jobs > 0 {
		res = append(res, load.FilesJobs(cfg.Jobs))
	}
	return res
}

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	f := encode.YAMLFormat
	if cfg.Y {
		f = encode.YAMLFormat
	}
	if cfg.J {
		f = encode.JSONFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return []encode.EncodeOption{encode.EncodeFormat(f)}
}

// colors returns the colors to write to w with, nil for plain output.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type MergeConfig struct {
	*MainConfig
	Merge *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only set the exit status'"`
	Check *cli.Command
}

type ModelConfig struct {
	*MainConfig
	Model *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int `cli:"name=U desc='unchanged lines shown around changes'"`
	Diff    *cli.Command
}

type TypesConfig struct {
	*MainConfig
	Refs  bool `cli:"name=refs desc='list the datatype names each expression refers to'"`
	Types *cli.Command
}

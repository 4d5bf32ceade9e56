package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// legacyConfig is the YAML configuration of the original generator. Older
// files use masks, postprocessor.ignore and clang.arguments instead of the
// input list.
type legacyConfig struct {
	Input []struct {
		Include        []string `yaml:"include"`
		HideTokens     []string `yaml:"hide_tokens"`
		CompileOptions []string `yaml:"compile_options"`
	} `yaml:"input"`
	Repository    string            `yaml:"repository"`
	Groups        map[string]string `yaml:"groups"`
	IncludeSource bool              `yaml:"include_source"`

	Masks          []string `yaml:"masks"`
	InputDirectory string   `yaml:"input_directory"`
	Postprocessor  struct {
		Ignore []string `yaml:"ignore"`
	} `yaml:"postprocessor"`
	Clang struct {
		Arguments []string `yaml:"arguments"`
	} `yaml:"clang"`
}

func loadYAML(p string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(p))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var lc legacyConfig
	if err := yaml.Unmarshal(data, &lc); err != nil {
		return fmt.Errorf("%s: failed to parse YAML: %w", p, err)
	}

	switch {
	case len(lc.Masks) > 0:
		in := Input{HideTokens: lc.Postprocessor.Ignore, CompileOptions: lc.Clang.Arguments}
		for _, m := range lc.Masks {
			in.Include = append(in.Include, path.Join(filepath.ToSlash(lc.InputDirectory), m))
		}
		cfg.Inputs = []Input{in}
	case len(lc.Input) > 0:
		cfg.Inputs = cfg.Inputs[:0]
		for _, li := range lc.Input {
			in := Input{Include: li.Include, HideTokens: li.HideTokens, CompileOptions: li.CompileOptions}
			if len(in.Include) == 0 {
				in.Include = append([]string(nil), DefaultInclude...)
			}
			cfg.Inputs = append(cfg.Inputs, in)
		}
	}
	cfg.Index.Repository = lc.Repository
	cfg.Index.IncludeSource = lc.IncludeSource
	if lc.Groups != nil {
		cfg.Index.Groups = lc.Groups
	}
	return nil
}

package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

// fileConfig mirrors the subset of options that can be pinned in
// ~/.phpdumprc.yaml, so recurring flags (max depth, strict mode) don't
// need to be retyped on every invocation. A command-line flag wins over
// the file when it is set to a non-default value: --max-depth other than
// 512, --strict, or --resolve-references. JSON output is on when either
// --json or the file's json setting turns it on.
type fileConfig struct {
	MaxDepth   *int  `yaml:"max_depth"`
	Strict     *bool `yaml:"strict"`
	JSON       *bool `yaml:"json"`
	ResolveRef *bool `yaml:"resolve_references"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &fileConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

// Command phpdump decodes a PHP serialize() byte stream from a file or
// stdin and prints the result, either as a pretty-printed value tree or
// as JSON.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/k0kubun/pp/v3"

	"github.com/go-phpserial/phpserial"
	"github.com/go-phpserial/phpserial/internal/cliutil"
)

type options struct {
	File              string `short:"f" long:"file" description:"Read serialized input from this file, rather than stdin" value-name:"path"`
	JSON              bool   `short:"j" long:"json" description:"Project the decoded value to JSON instead of pretty-printing the tree"`
	MaxDepth          int    `long:"max-depth" description:"Maximum nesting depth before MaxDepthExceeded" value-name:"n" default:"512"`
	Strict            bool   `long:"strict" description:"Fail on recoverable issues (e.g. string length mismatches) instead of recovering"`
	NoUnescape        bool   `long:"no-unescape" description:"Disable automatic DB-escape preprocessing"`
	ResolveReferences bool   `long:"resolve-references" description:"Resolve R/r references to their target's projection in JSON output"`
	Config            string `long:"config" description:"YAML config overriding the defaults above" value-name:"path" default:"~/.phpdumprc.yaml"`
	Help              bool   `long:"help" description:"Show this help"`
	Version           bool   `long:"version" description:"Show this version"`
}

var version = "dev"

func parseOptions(args []string) (*options, []string) {
	var opts options
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options] [file]"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		slog.Error("failed to parse arguments", "error", err)
		os.Exit(1)
	}
	if opts.Help {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if opts.Version {
		fmt.Println(version)
		os.Exit(0)
	}
	return &opts, rest
}

func resolveConfigPath(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func applyFileConfig(cfg phpserial.Config, fc *fileConfig, opts *options, explicitDepth, explicitStrict, explicitResolve bool) phpserial.Config {
	if fc.MaxDepth != nil && !explicitDepth {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if fc.Strict != nil && !explicitStrict {
		cfg.Strict = *fc.Strict
	}
	if fc.ResolveRef != nil && !explicitResolve {
		cfg.ResolveReferences = *fc.ResolveRef
	}
	if fc.JSON != nil {
		opts.JSON = opts.JSON || *fc.JSON
	}
	return cfg
}

func main() {
	cliutil.InitSlog()
	opts, rest := parseOptions(os.Args[1:])

	fc, err := loadFileConfig(resolveConfigPath(opts.Config))
	if err != nil {
		slog.Error("failed to load config file", "path", opts.Config, "error", err)
		os.Exit(1)
	}

	cfg := phpserial.DefaultConfig()
	cfg.MaxDepth = opts.MaxDepth
	cfg.Strict = opts.Strict
	cfg.AutoUnescape = !opts.NoUnescape
	cfg.ResolveReferences = opts.ResolveReferences
	cfg = applyFileConfig(cfg, fc, opts, opts.MaxDepth != 512, opts.Strict, opts.ResolveReferences)

	inputPath := opts.File
	if inputPath == "" && len(rest) > 0 {
		inputPath = rest[0]
	}

	var data []byte
	if inputPath == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		slog.Error("failed to read input", "error", err)
		os.Exit(1)
	}

	if opts.JSON {
		out, err := phpserial.ParseToJSON(data, cfg)
		if err != nil {
			slog.Error("decode failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	v, err := phpserial.Parse(data, cfg)
	if err != nil {
		slog.Error("decode failed", "error", err)
		os.Exit(1)
	}
	pp.Println(v)
}

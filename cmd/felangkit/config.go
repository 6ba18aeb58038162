package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/pipeline"
)

//go:embed config.schema.json
var configSchemaJSON []byte

// fileConfig is the on-disk shape of --config, decoded only after it has
// validated clean against configSchemaJSON.
type fileConfig struct {
	PerformSemanticAnalysis *bool   `json:"performSemanticAnalysis"`
	MaxNestingDepth         *int    `json:"maxNestingDepth"`
	Profile                 *string `json:"profile"`
	KeepTrivia              *bool   `json:"keepTrivia"`
	NormalizeUnicode        *bool   `json:"normalizeUnicode"`
}

// compileConfigSchema compiles the embedded schema: a fresh compiler,
// the schema added as an in-memory resource, then Compile against its
// own URL.
func compileConfigSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	const url = "schema://cli-config.json"
	if err := compiler.AddResource(url, bytes.NewReader(configSchemaJSON)); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return compiler.Compile(url)
}

// loadOptions reads path, validates it against the embedded JSON Schema,
// and applies its fields on top of base. An empty path is a no-op: base
// is returned unchanged.
func loadOptions(path string, base pipeline.Options) (pipeline.Options, error) {
	if path == "" {
		return base, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return base, fmt.Errorf("parsing config %s: %w", path, err)
	}

	schema, err := compileConfigSchema()
	if err != nil {
		return base, err
	}
	if err := schema.Validate(instance); err != nil {
		return base, fmt.Errorf("config %s failed validation: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		return base, fmt.Errorf("decoding config %s: %w", path, err)
	}

	opts := base
	if fc.PerformSemanticAnalysis != nil {
		opts.PerformSemanticAnalysis = *fc.PerformSemanticAnalysis
	}
	if fc.MaxNestingDepth != nil {
		opts.MaxNestingDepth = *fc.MaxNestingDepth
	}
	if fc.KeepTrivia != nil {
		opts.KeepTrivia = *fc.KeepTrivia
	}
	if fc.NormalizeUnicode != nil {
		opts.NormalizeUnicode = *fc.NormalizeUnicode
	}
	if fc.Profile != nil {
		switch *fc.Profile {
		case "default":
			opts.Profile = diagnostic.DefaultProfile()
		case "strict":
			opts.Profile = diagnostic.StrictProfile()
		case "fast":
			opts.Profile = diagnostic.FastProfile()
		default:
			return base, fmt.Errorf("config %s: unknown profile %q", path, *fc.Profile)
		}
	}
	return opts, nil
}

// optionsForProfile resolves a --profile flag value to a base Options,
// matching pipeline's named constructors.
func optionsForProfile(name string) (pipeline.Options, error) {
	switch name {
	case "", "default":
		return pipeline.DefaultOptions(), nil
	case "strict":
		return pipeline.StrictOptions(), nil
	case "fast":
		return pipeline.FastOptions(), nil
	default:
		return pipeline.Options{}, fmt.Errorf("unknown profile %q (want default, strict, or fast)", name)
	}
}

package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// Validate checks YAML config bytes against the embedded CUE schema.
// filename is used for error positions only.
//
// #Config is a closed definition, so unknown fields are rejected along with
// type and enum violations.
func Validate(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup #Config: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	val := ctx.BuildFile(file)
	if err := val.Err(); err != nil {
		return fmt.Errorf("build config value: %w", err)
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("invalid config %s:\n%s", filename, cueerrors.Details(err, nil))
	}
	return nil
}

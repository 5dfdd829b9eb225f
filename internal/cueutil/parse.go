// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseAndDecode compiles schema and data, unifies data with the schema
// definition at schemaPath (e.g. "#Config"), validates and decodes into T.
func ParseAndDecode[T any](schema string, data []byte, schemaPath string, opts ...Option) (*T, error) {
	options := apply(opts)

	if err := CheckFileSize(data, options.maxFileSize, options.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	def, err := lookupSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	userValue := ctx.CompileBytes(data, cue.Filename(options.filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), options.filename)
	}

	unified := def.Unify(userValue)
	if err := validate(unified, options.concrete); err != nil {
		return nil, FormatError(err, options.filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, options.filename)
	}
	return &result, nil
}

// ValidateValue encodes v as CUE and validates it against the schema
// definition at schemaPath.
func ValidateValue(schema, schemaPath string, v any, opts ...Option) error {
	options := apply(opts)

	ctx := cuecontext.New()
	def, err := lookupSchema(ctx, schema, schemaPath)
	if err != nil {
		return err
	}

	doc := ctx.Encode(v)
	if doc.Err() != nil {
		return FormatError(doc.Err(), options.filename)
	}

	if err := validate(def.Unify(doc), options.concrete); err != nil {
		return FormatError(err, options.filename)
	}
	return nil
}

func apply(opts []Option) parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func lookupSchema(ctx *cue.Context, schema, schemaPath string) (cue.Value, error) {
	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, def.Err())
	}
	return def, nil
}

func validate(v cue.Value, concrete bool) error {
	if concrete {
		return v.Validate(cue.Concrete(true))
	}
	return v.Validate()
}

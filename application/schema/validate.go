package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/motoko-tools/ttlex/application/boundary"
)

// Validator checks JSON-encoded response envelopes against Document.
type Validator struct {
	schemas map[boundary.Operation]*jsonschema.Schema
}

// NewValidator compiles the response schema of every operation.
func NewValidator() (*Validator, error) {
	doc, err := MarshalDocument()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(BaseURI, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	v := &Validator{schemas: make(map[boundary.Operation]*jsonschema.Schema, len(boundary.Operations))}
	for _, op := range boundary.Operations {
		sch, err := compiler.Compile(BaseURI + "#/$defs/" + string(op))
		if err != nil {
			return nil, fmt.Errorf("invalid schema for %s: %w", op, err)
		}
		v.schemas[op] = sch
	}
	return v, nil
}

// ValidateResponse checks one JSON envelope produced by op.
func (v *Validator) ValidateResponse(op boundary.Operation, data []byte) error {
	sch, ok := v.schemas[op]
	if !ok {
		return fmt.Errorf("no schema registered for operation %s", op)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("failed to prepare validation object: %w", err)
	}
	if err := sch.Validate(obj); err != nil {
		return fmt.Errorf("%s response: %w", op, err)
	}
	return nil
}

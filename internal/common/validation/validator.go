// Package validation checks job variables against the input schemas of the
// activity registry.
package validation

import (
	"fmt"
	"strings"

	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

// Validator holds one compiled input schema per task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles the input schema of every activity in reg.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for i := range reg.Activities {
		activity := &reg.Activities[i]
		schema, err := activity.CompileInputSchema()
		if err != nil {
			return nil, err
		}
		if schema != nil {
			v.schemas[activity.TaskType] = schema
		}
	}
	return v, nil
}

// Load reads the registry at path and compiles it.
func Load(path string) (*Validator, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load activity registry: %w", err)
	}
	return NewValidator(reg)
}

// Validate checks raw job variables against the schema of taskType. A nil
// Validator and task types without a schema accept everything.
func (v *Validator) Validate(taskType, variables string) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return errors.NewParseError(err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	fields := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
		fields = append(fields, desc.Field())
	}
	return errors.NewInvalidInputError(strings.Join(msgs, "; ")).
		WithMetadata("invalidFields", fields)
}

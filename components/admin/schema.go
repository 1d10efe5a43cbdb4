package admin

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed data/dataset.schema.json
var datasetSchema []byte

const datasetSchemaURL = "dataset.schema.json"

// DatasetValidator checks seed documents against the bundled JSON schema.
type DatasetValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	compiled map[string]*jsonschema.Schema
}

// NewDatasetValidator prepares a validator; schemas compile lazily.
func NewDatasetValidator() (*DatasetValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(datasetSchemaURL, bytes.NewReader(datasetSchema)); err != nil {
		return nil, fmt.Errorf("admin: load dataset schema: %w", err)
	}
	return &DatasetValidator{
		compiler: compiler,
		compiled: make(map[string]*jsonschema.Schema),
	}, nil
}

// ValidateDocument validates a whole seed document.
func (v *DatasetValidator) ValidateDocument(raw []byte) error {
	schema, err := v.schemaFor("")
	if err != nil {
		return err
	}
	return validateRaw(schema, raw, "dataset")
}

// ValidateCollection validates one collection array.
func (v *DatasetValidator) ValidateCollection(name string, raw json.RawMessage) error {
	if !knownCollection(name) {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	schema, err := v.schemaFor(name)
	if err != nil {
		return err
	}
	return validateRaw(schema, raw, name)
}

func validateRaw(schema *jsonschema.Schema, raw []byte, label string) error {
	var payload any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("admin: parse %s: %w", label, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("admin: %s failed schema validation: %w", label, err)
	}
	return nil
}

func (v *DatasetValidator) schemaFor(collection string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if schema, ok := v.compiled[collection]; ok {
		return schema, nil
	}
	url := datasetSchemaURL
	if collection != "" {
		url += "#/properties/" + collection
	}
	schema, err := v.compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("admin: compile schema %s: %w", url, err)
	}
	v.compiled[collection] = schema
	return schema, nil
}

package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset is the seed document: one array per collection.
type Dataset struct {
	Categories []Category      `json:"categories" yaml:"categories"`
	Channels   []Channel       `json:"channels" yaml:"channels"`
	Templates  []Template      `json:"templates" yaml:"templates"`
	Users      []User          `json:"users" yaml:"users"`
	Payment    []PaymentMethod `json:"payment" yaml:"payment"`
	OrderList  []Order         `json:"orderlist" yaml:"orderlist"`
}

// Counts returns the number of records per collection.
func (d Dataset) Counts() map[string]int {
	return map[string]int{
		CollectionCategories: len(d.Categories),
		CollectionChannels:   len(d.Channels),
		CollectionTemplates:  len(d.Templates),
		CollectionUsers:      len(d.Users),
		CollectionPayments:   len(d.Payment),
		CollectionOrders:     len(d.OrderList),
	}
}

// Dataset formats understood by the readers and writers.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath infers json or yaml from a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// CollectionNames lists the collections of the seed document in order.
func CollectionNames() []string {
	return []string{
		CollectionCategories,
		CollectionChannels,
		CollectionTemplates,
		CollectionUsers,
		CollectionPayments,
		CollectionOrders,
	}
}

func knownCollection(name string) bool {
	for _, n := range CollectionNames() {
		if n == name {
			return true
		}
	}
	return false
}

// ReadDocument parses a json or yaml seed document into raw collections.
func ReadDocument(r io.Reader, format string) (map[string]json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("admin: read dataset: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("admin: dataset is empty")
	}
	if format == FormatYAML {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("admin: parse dataset: %w", err)
	}
	return doc, nil
}

// ReadDatasetFile reads and fully decodes a seed document from disk.
func ReadDatasetFile(path string) (Dataset, []byte, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("admin: open dataset %s: %w", path, err)
	}
	defer f.Close()
	doc, err := ReadDocument(f, FormatFromPath(path))
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("admin: decode dataset %s: %w", path, err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Dataset{}, nil, fmt.Errorf("admin: normalize dataset %s: %w", path, err)
	}
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, nil, fmt.Errorf("admin: decode dataset %s: %w", path, err)
	}
	return ds, raw, nil
}

// WriteDataset encodes a dataset as json or yaml.
func WriteDataset(w io.Writer, ds Dataset, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return fmt.Errorf("admin: encode dataset yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ds); err != nil {
			return fmt.Errorf("admin: encode dataset json: %w", err)
		}
		return nil
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("admin: parse dataset yaml: %w", err)
	}
	out, err := json.Marshal(stringKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("admin: convert dataset yaml: %w", err)
	}
	return out, nil
}

// stringKeys converts map[any]any nodes so encoding/json accepts them.
func stringKeys(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			node[k] = stringKeys(child)
		}
		return node
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = stringKeys(child)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = stringKeys(child)
		}
		return node
	default:
		return v
	}
}

package autoswagger

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/toyz/autoswagger/internal/errors"
	"github.com/toyz/autoswagger/internal/utils/fileops"
)

// Output file names written by WriteFiles
const (
	JSONFileName = "swagger.json"
	YAMLFileName = "swagger.yml"
)

// MarshalJSON renders doc as indented JSON
func MarshalJSON(doc *openapi3.T) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, errors.WrapGenerateError("JSON document", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, errors.WrapGenerateError("JSON document", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// MarshalYAML renders doc as block-style YAML with the key order of the JSON form
func MarshalYAML(doc *openapi3.T) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, errors.WrapGenerateError("YAML document", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, errors.WrapGenerateError("YAML document", err)
	}
	blockStyle(&node)

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, errors.WrapGenerateError("YAML document", err)
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapGenerateError("YAML document", err)
	}
	return out.Bytes(), nil
}

// blockStyle drops the flow and quoting styles JSON input carries. Strings
// that would read back as another type are still quoted by the encoder.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// WriteFiles writes swagger.json and swagger.yml into dir, creating it if needed
func WriteFiles(doc *openapi3.T, dir string) error {
	jsonData, err := MarshalJSON(doc)
	if err != nil {
		return err
	}
	yamlData, err := MarshalYAML(doc)
	if err != nil {
		return err
	}

	ops := fileops.NewFileOps()
	if err := ops.WriteFile(filepath.Join(dir, JSONFileName), jsonData, 0o644); err != nil {
		return err
	}
	return ops.WriteFile(filepath.Join(dir, YAMLFileName), yamlData, 0o644)
}

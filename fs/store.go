package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/storyseq/storyseq"
	"github.com/xeipuuv/gojsonschema"
)

// Compile-time interface verification.
var _ storyseq.DocumentStore = (*DocumentStore)(nil)

// documentSchema is the structural contract for incoming payloads: either
// a bare prompt array or one of the object exchange shapes. It catches
// type errors (a string frameNumber, a non-array prompt list) before the
// payload reaches shape detection.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "prompt": {
      "type": "object",
      "required": ["frameNumber"],
      "properties": {
        "frameNumber": {"type": "integer", "minimum": 0},
        "sceneNumber": {"type": "integer"},
        "sceneTitle": {"type": "string"},
        "prompt": {"type": "string"},
        "videoPrompt": {"type": "string"},
        "shotType": {"type": "string"},
        "characters": {"type": "array", "items": {"type": "string"}},
        "duration": {"type": "number"},
        "isCollapsed": {"type": "boolean"}
      }
    },
    "promptList": {"type": "array", "items": {"$ref": "#/definitions/prompt"}}
  },
  "oneOf": [
    {"$ref": "#/definitions/promptList"},
    {
      "type": "object",
      "properties": {
        "type": {"type": "string"},
        "title": {"type": "string"},
        "finalPrompts": {"$ref": "#/definitions/promptList"},
        "prompts": {"$ref": "#/definitions/promptList"},
        "videoPrompts": {"$ref": "#/definitions/promptList"},
        "sourcePrompts": {"$ref": "#/definitions/promptList"},
        "modifiedPrompts": {"$ref": "#/definitions/promptList"},
        "sceneContexts": {"type": "object", "additionalProperties": {"type": "string"}},
        "usedCharacters": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "index": {"type": "string"},
              "name": {"type": "string"}
            }
          }
        }
      }
    }
  ]
}`

// DocumentStore loads and saves exchange documents on disk, validating
// incoming payloads against the exchange schema.
type DocumentStore struct {
	schema *gojsonschema.Schema
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore() (*DocumentStore, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	if err != nil {
		return nil, fmt.Errorf("fs: compile document schema: %w", err)
	}
	return &DocumentStore{schema: schema}, nil
}

// Load reads, validates and normalizes an external payload.
func (s *DocumentStore) Load(path string) (*storyseq.Ingest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("fs: validate %s: %w", path, err)
	}
	if !result.Valid() {
		var reasons []string
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return nil, fmt.Errorf("fs: %s does not conform to the exchange schema: %s",
			path, strings.Join(reasons, "; "))
	}

	ingest, err := storyseq.ParsePayload(data, nil)
	if err != nil {
		return nil, fmt.Errorf("fs: %s: %w", path, err)
	}
	return ingest, nil
}

// Save writes the canonical export document as indented JSON, creating
// parent directories if needed.
func (s *DocumentStore) Save(path string, doc *storyseq.ExportDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("fs: marshal export document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

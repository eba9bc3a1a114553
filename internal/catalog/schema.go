package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaURL = "schema://classlens/catalog.json"

// documentSchema describes the shape of a catalog file. Record-level ranges
// are checked again by the struct validator after decoding.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"students", "topics", "classes", "subjects", "query_templates"},
	"properties": map[string]any{
		"students": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name", "average_score", "engagement", "confusion_level", "learning_mode"},
				"properties": map[string]any{
					"id":              map[string]any{"type": "string", "minLength": 1},
					"name":            map[string]any{"type": "string", "minLength": 1},
					"average_score":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"engagement":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"queries_asked":   map[string]any{"type": "integer", "minimum": 0},
					"notes_created":   map[string]any{"type": "integer", "minimum": 0},
					"content_scanned": map[string]any{"type": "integer", "minimum": 0},
					"confusion_level": map[string]any{"enum": []any{"Low", "Medium", "High"}},
					"learning_mode":   map[string]any{"enum": []any{"Classroom", "Self-Learning", "Both"}},
					"strengths":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"struggles":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name"},
				"properties": map[string]any{
					"id":              map[string]any{"type": "string", "minLength": 1},
					"name":            map[string]any{"type": "string", "minLength": 1},
					"engagement_rate": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"average_score":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				},
			},
		},
		"classes":  map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
		"subjects": map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
		"query_templates": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string"},
			},
		},
		"query_signatures": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"student", "query_volume", "levels"},
				"properties": map[string]any{
					"student":      map[string]any{"type": "string", "minLength": 1},
					"query_volume": map[string]any{"type": "integer", "minimum": 0},
					"relevance":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"trend":        map[string]any{"enum": []any{"up", "stable", "down"}},
				},
			},
		},
		"timelines": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"student", "segments"},
				"properties": map[string]any{
					"student":  map[string]any{"type": "string", "minLength": 1},
					"segments": map[string]any{"type": "array", "minItems": 1},
					"events":   map[string]any{"type": "array"},
				},
			},
		},
		"study_activity": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"student", "status"},
				"properties": map[string]any{
					"status": map[string]any{"enum": []any{"struggling", "improving", "confident"}},
				},
			},
		},
		"topic_struggles": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"topic", "severity"},
				"properties": map[string]any{
					"severity": map[string]any{"enum": []any{"high", "medium", "low"}},
				},
			},
		},
		"recent_questions": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topics": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
				},
				"default": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// ValidateDocument checks a YAML catalog document against the catalog
// schema before it is decoded.
func ValidateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: parse yaml: %v", ErrInvalidCatalog, err)
	}

	// Round-trip through JSON so numbers and maps take the shapes the
	// validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: convert to json: %v", ErrInvalidCatalog, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: parse json: %v", ErrInvalidCatalog, err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}

package oracle

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// The schemas gate oracle output before it is unmarshalled into domain
// types: a structurally wrong response fails here with a field-level
// message instead of surfacing as a half-populated struct downstream.

const scoringSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["results"],
  "properties": {
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["candidate_name", "relevance_score"],
        "properties": {
          "candidate_name": {"type": "string", "minLength": 1},
          "relevance_score": {"type": "integer", "minimum": 0, "maximum": 100},
          "reasoning": {"type": "string"},
          "matching_skills": {"type": "array", "items": {"type": "string"}},
          "missing_skills": {"type": "array", "items": {"type": "string"}},
          "sectors": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "summary": {"type": "string"}
  }
}`

const detectionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["is_multiple", "total_profiles_needed", "profiles"],
  "properties": {
    "is_multiple": {"type": "boolean"},
    "total_profiles_needed": {"type": "integer", "minimum": 0},
    "confidence": {"type": "integer", "minimum": 0, "maximum": 100},
    "reasoning": {"type": "string"},
    "profiles": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "required_skills": {"type": "array", "items": {"type": "string"}},
          "nice_to_have": {"type": "array", "items": {"type": "string"}},
          "min_experience": {"type": "string"},
          "responsibilities": {"type": "array", "items": {"type": "string"}},
          "estimated_headcount": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

// jsonSchema narrows the loader type the decode path depends on.
type jsonSchema = gojsonschema.JSONLoader

var (
	scoringSchemaLoader   = gojsonschema.NewStringLoader(scoringSchema)
	detectionSchemaLoader = gojsonschema.NewStringLoader(detectionSchema)
)

// validateAgainstSchema checks a raw JSON document against a schema
// loader and folds the field-level failures into one error message.
func validateAgainstSchema(schema gojsonschema.JSONLoader, document string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(document))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		problems = append(problems, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return fmt.Errorf("schema violations: %s", strings.Join(problems, "; "))
}

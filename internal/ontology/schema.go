package ontology

// fileSchema is the JSON Schema every ontology file is validated against
// before any structural checks run. Keeping it in source means a build is
// never missing its schema regardless of working directory.
const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Skill Ontology",
  "type": "object",
  "required": ["skills"],
  "properties": {
    "skills": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "name", "category"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string", "minLength": 1},
          "aliases": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          }
        },
        "additionalProperties": false
      }
    },
    "relations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["source", "target", "kind", "weight"],
        "properties": {
          "source": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "kind": {"type": "string", "enum": ["related_to", "part_of"]},
          "weight": {"type": "number", "exclusiveMinimum": 0, "maximum": 1}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

package content

// packSchema is the JSON Schema every content pack must satisfy before it is
// served. Catching a malformed pack at load time keeps content errors out of
// the request path.
const packSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["language", "questions", "stories", "lessons"],
  "properties": {
    "language": {"type": "string", "enum": ["en", "es"]},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "options", "correct", "explanation"],
        "properties": {
          "question": {"type": "string", "minLength": 1},
          "options": {
            "type": "array",
            "minItems": 2,
            "items": {"type": "string", "minLength": 1}
          },
          "correct": {"type": "integer", "minimum": 0},
          "explanation": {"type": "string", "minLength": 1}
        }
      }
    },
    "stories": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "character", "chapters"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "character": {"type": "string", "minLength": 1},
          "chapters": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["text", "lesson", "emoji"],
              "properties": {
                "text": {"type": "string", "minLength": 1},
                "lesson": {"type": "string", "minLength": 1},
                "emoji": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "lessons": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "module", "title", "body", "key_points"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "module": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "body": {"type": "string", "minLength": 1},
          "key_points": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

package aigen

import (
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema validates one placement record. Applied per record so a single
// malformed entry costs only itself, not the batch. partId and colorId
// existence is checked against the catalog afterwards (with fallback, not
// rejection), so the schema only pins types and the rotation range.
const recordSchemaJSON = `{
	"type": "object",
	"required": ["partId", "x", "y", "z"],
	"properties": {
		"partId":   {"type": "string", "minLength": 1},
		"x":        {"type": "number"},
		"y":        {"type": "number"},
		"z":        {"type": "number"},
		"rotation": {"type": "integer", "minimum": 0, "maximum": 3},
		"colorId":  {"type": "string"}
	}
}`

var recordSchema = jsonschema.MustCompileString("record.json", recordSchemaJSON)

// decodeRecord unmarshals and schema-checks one record. ok is false for
// records that must be dropped.
func decodeRecord(raw json.RawMessage) (Record, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Record{}, false
	}
	if err := recordSchema.Validate(v); err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

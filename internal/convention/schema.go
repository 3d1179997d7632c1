package convention

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"texlink/internal/model"
)

// schemaJSON constrains the shape of known keys only. Unknown keys pass,
// keeping the file forward-compatible.
const schemaJSON = `{
    "$schema": "https://json-schema.org/draft/2020-12/schema",
    "type": "object",
    "properties": {
        "BaseColor": {"$ref": "#/$defs/aliasList"},
        "Roughness": {"$ref": "#/$defs/aliasList"},
        "Normal":    {"$ref": "#/$defs/aliasList"},
        "Metallic":  {"$ref": "#/$defs/aliasList"},
        "Height":    {"$ref": "#/$defs/aliasList"},
        "Opacity":   {"$ref": "#/$defs/aliasList"},
        "udim":       {"type": "boolean"},
        "prefer_exr": {"type": "boolean"}
    },
    "$defs": {
        "aliasList": {
            "type": "array",
            "items": {
                "type": "object",
                "required": ["name"],
                "properties": {
                    "name":   {"type": "string", "minLength": 1},
                    "locked": {"type": "boolean"}
                }
            }
        }
    }
}`

var schema = jsonschema.MustCompileString("texlink.schema.json", schemaJSON)

// validate checks a decoded document against the convention schema and
// requires at least one recognized map-type key to be present.
func validate(raw map[string]interface{}) error {
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	for _, t := range model.AllMapTypes {
		if _, ok := raw[string(t)]; ok {
			return nil
		}
	}
	return fmt.Errorf("%w: no map-type keys present", ErrSchema)
}

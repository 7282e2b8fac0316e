package config

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// lookupComment reads descriptions from lc: (line comment, field-level) or
// hc: (head comment, struct-level) tags, making them the single source of
// truth for both yaml-comment's inline comments and this JSON Schema's
// descriptions.
func lookupComment(t reflect.Type, fieldName string) string {
	if fieldName == "" {
		return ""
	}
	f, found := t.FieldByName(fieldName)
	if !found {
		return ""
	}
	if desc := f.Tag.Get("lc"); desc != "" {
		return capitalizeFirst(desc)
	}
	return capitalizeFirst(f.Tag.Get("hc"))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GenerateSchema produces a JSON Schema for Config, for editor autocomplete
// against .mdrx.yml.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference: false,
		LookupComment:  lookupComment,
	}

	s := r.Reflect(&Config{})
	s.ID = "https://raw.githubusercontent.com/jackchuka/mdrx/main/config.schema.json"
	s.Title = "mdrx"
	s.Description = "Schema for mdrx configuration files (.mdrx.yml)"

	return json.MarshalIndent(s, "", "  ")
}

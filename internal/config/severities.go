package config

import (
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Severities maps each diagnostic kind to "error" or "warning". It accepts
// either a bare scalar ("error") applied to every kind, or an object giving
// each kind its own severity.
type Severities struct {
	// All is set when the config uses the scalar shorthand (severities: error).
	All string `yaml:"-" json:"-"`

	MissingMandatory string `yaml:"missing_mandatory,omitempty" json:"missing_mandatory,omitempty" lc:"severity for an unmatched mandatory element" comment:"severity for an unmatched mandatory element"`
	ContentMismatch  string `yaml:"content_mismatch,omitempty" json:"content_mismatch,omitempty" lc:"severity for content that fails the prompt match" comment:"severity for content that fails the prompt match"`
	SuperfluousNode  string `yaml:"superfluous_node,omitempty" json:"superfluous_node,omitempty" lc:"severity for a document node the prescription never described" comment:"severity for a document node the prescription never described"`
}

// UnmarshalYAML supports both "severities: error" and the per-kind object form.
func (s *Severities) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = Severities{All: node.Value}
		return nil
	}

	type severitiesAlias Severities
	alias := (*severitiesAlias)(s)
	return node.Decode(alias)
}

// Resolve returns the effective severity for each kind, applying the scalar
// shorthand before any per-kind field that was left unset.
func (s Severities) Resolve(fallback Severities) Severities {
	resolved := fallback
	if s.All != "" {
		resolved.MissingMandatory = s.All
		resolved.ContentMismatch = s.All
		resolved.SuperfluousNode = s.All
	}
	if s.MissingMandatory != "" {
		resolved.MissingMandatory = s.MissingMandatory
	}
	if s.ContentMismatch != "" {
		resolved.ContentMismatch = s.ContentMismatch
	}
	if s.SuperfluousNode != "" {
		resolved.SuperfluousNode = s.SuperfluousNode
	}
	return resolved
}

// JSONSchema implements jsonschema.JSONSchemer for the scalar-or-object union.
func (Severities) JSONSchema() *jsonschema.Schema {
	severityEnum := []any{"error", "warning"}

	props := jsonschema.NewProperties()
	props.Set("missing_mandatory", &jsonschema.Schema{
		Type: "string", Enum: severityEnum,
		Description: "Severity for an unmatched mandatory element",
	})
	props.Set("content_mismatch", &jsonschema.Schema{
		Type: "string", Enum: severityEnum,
		Description: "Severity for content that fails the prompt match",
	})
	props.Set("superfluous_node", &jsonschema.Schema{
		Type: "string", Enum: severityEnum,
		Description: "Severity for a document node the prescription never described",
	})

	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string", Enum: severityEnum, Description: "Severity applied to every diagnostic kind"},
			{
				Type:                 "object",
				Properties:           props,
				AdditionalProperties: jsonschema.FalseSchema,
				Description:          "Per-kind diagnostic severities",
			},
		},
		Description: "Diagnostic severities, either uniform or per-kind",
	}
}

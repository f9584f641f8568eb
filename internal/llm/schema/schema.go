// Package schema holds the declarative structural descriptors for every
// model-backed task. The same descriptor is rendered into the outbound
// request (as a JSON Schema the remote endpoint may enforce) and used to
// validate the inbound response locally, so the two can never drift apart.
package schema

import "encoding/json"

// Kind is the primitive kind of a schema node.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Field describes one named property of an object schema.
type Field struct {
	Name     string
	Schema   *Schema
	Required bool
}

// Schema is an immutable structural descriptor for a JSON value.
// Enum is only meaningful for KindString, Items for KindArray, and
// Fields for KindObject.
type Schema struct {
	Kind        Kind
	Description string
	Enum        []string
	Items       *Schema
	Fields      []Field
}

// String builds a free-text string descriptor.
func String(description string) *Schema {
	return &Schema{Kind: KindString, Description: description}
}

// StringEnum builds a string descriptor restricted to the given value set.
func StringEnum(description string, values ...string) *Schema {
	return &Schema{Kind: KindString, Description: description, Enum: values}
}

// Number builds a numeric descriptor.
func Number(description string) *Schema {
	return &Schema{Kind: KindNumber, Description: description}
}

// Boolean builds a boolean descriptor.
func Boolean(description string) *Schema {
	return &Schema{Kind: KindBoolean, Description: description}
}

// ArrayOf builds an array descriptor with the given element shape.
func ArrayOf(description string, items *Schema) *Schema {
	return &Schema{Kind: KindArray, Description: description, Items: items}
}

// Object builds an object descriptor from its fields, preserving order.
func Object(fields ...Field) *Schema {
	return &Schema{Kind: KindObject, Fields: fields}
}

// Required marks a field the response must contain.
func Required(name string, s *Schema) Field {
	return Field{Name: name, Schema: s, Required: true}
}

// Optional marks a field the response may omit.
func Optional(name string, s *Schema) Field {
	return Field{Name: name, Schema: s}
}

// MarshalJSON renders the descriptor as a standard JSON Schema document,
// which is what OpenAI-compatible endpoints accept as a response format.
func (s *Schema) MarshalJSON() ([]byte, error) {
	doc := map[string]any{"type": string(s.Kind)}
	if s.Description != "" {
		doc["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		doc["enum"] = s.Enum
	}
	switch s.Kind {
	case KindArray:
		doc["items"] = s.Items
	case KindObject:
		props := make(map[string]*Schema, len(s.Fields))
		required := make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			props[f.Name] = f.Schema
			if f.Required {
				required = append(required, f.Name)
			}
		}
		doc["properties"] = props
		if len(required) > 0 {
			doc["required"] = required
		}
		doc["additionalProperties"] = false
	}
	return json.Marshal(doc)
}

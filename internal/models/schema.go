package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Schema is a machine-checkable description of the document a generation
// call must return. It is embedded in the prompt and later used to verify
// the reply before the reply is trusted.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
}

// JSON renders the schema with indentation for embedding in a prompt.
func (s *Schema) JSON() string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Sprintf("ERROR: failed to marshal schema: %v", err)
	}
	return string(b)
}

// SchemaFor derives a Schema from a struct by reflection. Field names come
// from json tags, descriptions from desc tags. Pointer fields are nullable
// and optional, everything else is required.
func SchemaFor(v any) *Schema {
	return schemaForType(reflect.TypeOf(v))
}

func schemaForType(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Pointer:
		s := schemaForType(t.Elem())
		s.Nullable = true
		return s
	case reflect.Struct:
		return schemaForStruct(t)
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: schemaForType(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object"}
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	default:
		// Unknown kinds degrade to string rather than panicking.
		return &Schema{Type: "string"}
	}
}

func schemaForStruct(t reflect.Type) *Schema {
	s := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonFieldName(f)
		if name == "" {
			continue
		}
		fieldSchema := schemaForType(f.Type)
		if desc, ok := f.Tag.Lookup("desc"); ok {
			fieldSchema.Description = desc
		}
		s.Properties[name] = fieldSchema
		if f.Type.Kind() != reflect.Pointer {
			s.Required = append(s.Required, name)
		}
	}
	slices.Sort(s.Required)
	return s
}

func jsonFieldName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// CheckRequired walks doc, a generically unmarshalled JSON document,
// against the schema and returns the paths of all required fields which
// are missing or null. An empty return means the document conforms.
func CheckRequired(s *Schema, doc any) []string {
	var missing []string
	checkRequired(s, doc, "", &missing)
	slices.Sort(missing)
	return missing
}

func checkRequired(s *Schema, doc any, path string, missing *[]string) {
	if doc == nil {
		return
	}
	switch s.Type {
	case "object":
		obj, ok := doc.(map[string]any)
		if !ok {
			*missing = append(*missing, joinPath(path, fmt.Sprintf("(expected object, got %T)", doc)))
			return
		}
		for _, req := range s.Required {
			val, present := obj[req]
			if !present || (val == nil && !s.Properties[req].Nullable) {
				*missing = append(*missing, joinPath(path, req))
				continue
			}
		}
		for name, prop := range s.Properties {
			if val, present := obj[name]; present {
				checkRequired(prop, val, joinPath(path, name), missing)
			}
		}
	case "array":
		arr, ok := doc.([]any)
		if !ok {
			*missing = append(*missing, joinPath(path, fmt.Sprintf("(expected array, got %T)", doc)))
			return
		}
		for i, item := range arr {
			checkRequired(s.Items, item, fmt.Sprintf("%v[%v]", path, i), missing)
		}
	}
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

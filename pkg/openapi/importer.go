// Package openapi seeds form schemas from OpenAPI documents: the request
// body of an operation becomes a field sequence a builder can start from.
package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Import loads an OpenAPI document and converts the request body of the
// operation with the given id into a form schema. Only scalar properties
// map to fields; nested objects and arrays are skipped, since the form
// model is flat by design.
func Import(ctx context.Context, document []byte, operationID string) (schema.Form, error) {
	if len(document) == 0 {
		return schema.Form{}, fmt.Errorf("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(document)
	if err != nil {
		return schema.Form{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return schema.Form{}, fmt.Errorf("openapi: document contains no paths")
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return schema.Form{}, &OperationNotFoundError{OperationID: operationID}
	}

	body := requestBodySchema(operation)
	if body == nil {
		return schema.Form{}, fmt.Errorf("openapi: operation %q has no usable request body", operationID)
	}

	title := strings.TrimSpace(operation.Summary)
	if title == "" {
		title = schema.DefaultLabeler(operationID)
	}

	form := schema.Form{
		Title:  title,
		Fields: convertProperties(body),
	}
	if err := form.Validate(); err != nil {
		return schema.Form{}, fmt.Errorf("openapi: imported schema invalid: %w", err)
	}
	return form, nil
}

// OperationNotFoundError reports an operation id absent from the document.
type OperationNotFoundError struct {
	OperationID string
}

func (e *OperationNotFoundError) Error() string {
	return fmt.Sprintf("openapi: operation %q not found", e.OperationID)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertProperties(body *openapi3.Schema) []schema.Field {
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []schema.Field
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(name, ref.Value, required[name])
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func convertProperty(name string, property *openapi3.Schema, required bool) (schema.Field, bool) {
	kind, ok := fieldKindFor(property)
	if !ok {
		return schema.Field{}, false
	}

	field := schema.Field{
		ID:       name,
		Kind:     kind,
		Label:    schema.DefaultLabeler(name),
		Required: required,
	}
	if title := strings.TrimSpace(property.Title); title != "" {
		field.Label = title
	}
	if desc := strings.TrimSpace(property.Description); desc != "" {
		field.Placeholder = desc
	}
	if kind.IsChoice() {
		for _, value := range property.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
		if len(field.Options) == 0 {
			return schema.Field{}, false
		}
	}
	return field, true
}

func fieldKindFor(property *openapi3.Schema) (schema.FieldKind, bool) {
	switch firstType(property.Type) {
	case "string":
		if len(property.Enum) > 0 {
			return schema.KindSelect, true
		}
		switch property.Format {
		case "email":
			return schema.KindEmail, true
		case "date":
			return schema.KindDate, true
		case "time":
			return schema.KindTime, true
		case "date-time":
			return schema.KindDatetime, true
		case "uri", "url":
			return schema.KindURL, true
		case "binary":
			return schema.KindFile, true
		case "tel", "phone":
			return schema.KindTel, true
		}
		return schema.KindText, true
	case "integer", "number":
		return schema.KindNumber, true
	case "boolean":
		return schema.KindCheckbox, true
	default:
		// objects, arrays, and untyped schemas have no flat-form equivalent
		return "", false
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

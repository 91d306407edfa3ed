package http

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Spec describes the HTTP API as an OpenAPI 3 document.
func Spec(version string) *openapi3.T {
	if version == "" {
		version = "dev"
	}

	result := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema().WithEnum(
			"OK", "TypeError", "TypesError", "FormatError", "Required", "LengthError", "RangeError", "SchemaError",
		)).
		WithProperty("expect", openapi3.NewObjectSchema()).
		WithProperty("actual", openapi3.NewObjectSchema()).
		WithProperty("parent", openapi3.NewObjectSchema())
	errorBody := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("request_id", openapi3.NewStringSchema())
	nameParam := openapi3.NewPathParameter("name").WithSchema(openapi3.NewStringSchema())

	validate := operation("validate", "Validate a value against an inline or stored schema")
	validate.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(openapi3.NewObjectSchema().
			WithProperty("schema", openapi3.NewObjectSchema()).
			WithProperty("schema_name", openapi3.NewStringSchema()).
			WithProperty("value", openapi3.NewSchema()))}
	validate.AddResponse(200, jsonResponse("Validation outcome", openapi3.NewObjectSchema().
		WithProperty("ok", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("path", openapi3.NewStringSchema()).
		WithProperty("result", result)))
	validate.AddResponse(400, jsonResponse("Malformed request", errorBody))
	validate.AddResponse(404, jsonResponse("Unknown schema name", errorBody))

	listPatterns := operation("listPatterns", "List registered patterns")
	listPatterns.AddResponse(200, jsonResponse("Pattern table", openapi3.NewObjectSchema().
		WithProperty("patterns", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))))

	getPattern := operation("getPattern", "Look up one pattern")
	getPattern.AddParameter(nameParam)
	getPattern.AddResponse(200, jsonResponse("Pattern source", openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("source", openapi3.NewStringSchema())))
	getPattern.AddResponse(404, jsonResponse("Unknown pattern", errorBody))

	expand := operation("expandPattern", "Expand <name> placeholders in a format")
	expand.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(openapi3.NewObjectSchema().WithProperty("format", openapi3.NewStringSchema()))}
	expand.AddResponse(200, jsonResponse("Expanded format", openapi3.NewObjectSchema().
		WithProperty("format", openapi3.NewStringSchema()).
		WithProperty("expanded", openapi3.NewStringSchema()).
		WithProperty("valid", openapi3.NewBoolSchema()).
		WithProperty("error", openapi3.NewStringSchema())))

	listSchemas := operation("listSchemas", "List stored schema names")
	listSchemas.AddResponse(200, jsonResponse("Schema names", openapi3.NewObjectSchema().
		WithProperty("schemas", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))))

	getSchema := operation("getSchema", "Fetch a stored schema document")
	getSchema.AddParameter(nameParam)
	getSchema.AddResponse(200, openapi3.NewResponse().
		WithDescription("The document as stored (YAML or JSON)").
		WithContent(openapi3.NewContentWithSchema(openapi3.NewObjectSchema(), []string{"application/json", "application/yaml"})))
	getSchema.AddResponse(404, jsonResponse("Unknown schema", errorBody))

	putSchema := operation("putSchema", "Store a schema document")
	putSchema.AddParameter(nameParam)
	putSchema.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithContent(openapi3.NewContentWithSchema(openapi3.NewObjectSchema(), []string{"application/json", "application/yaml"}))}
	putSchema.AddResponse(200, jsonResponse("Stored", openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("fields", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))))
	putSchema.AddResponse(422, jsonResponse("Malformed schema", errorBody))

	deleteSchema := operation("deleteSchema", "Delete a stored schema")
	deleteSchema.AddParameter(nameParam)
	deleteSchema.AddResponse(204, openapi3.NewResponse().WithDescription("Deleted"))

	health := operation("getHealth", "Liveness probe")
	health.AddResponse(200, jsonResponse("Healthy", openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema())))

	events := operation("subscribeEvents", "Stream schema change events (SSE)")
	events.AddResponse(200, openapi3.NewResponse().
		WithDescription("Server-sent events").
		WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/event-stream"})))

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "expect",
			Description: "Schema validation for dynamic values",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
	doc.Paths.Set("/validate", &openapi3.PathItem{Post: validate})
	doc.Paths.Set("/patterns", &openapi3.PathItem{Get: listPatterns})
	doc.Paths.Set("/patterns/{name}", &openapi3.PathItem{Get: getPattern})
	doc.Paths.Set("/patterns/expand", &openapi3.PathItem{Post: expand})
	doc.Paths.Set("/schemas", &openapi3.PathItem{Get: listSchemas})
	doc.Paths.Set("/schemas/{name}", &openapi3.PathItem{Get: getSchema, Put: putSchema, Delete: deleteSchema})
	doc.Paths.Set("/health", &openapi3.PathItem{Get: health})
	doc.Paths.Set("/events", &openapi3.PathItem{Get: events})
	return doc
}

func operation(id, summary string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Responses = openapi3.NewResponses()
	return op
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.Response {
	return openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema)
}

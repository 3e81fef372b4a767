package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const bulkReceiptSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["store", "items"],
  "properties": {
    "date":  {"type": "string"},
    "store": {"type": "string", "minLength": 1},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["description", "quantity", "price", "category_id"],
        "properties": {
          "description": {"type": "string", "minLength": 1},
          "quantity":    {"type": "number", "exclusiveMinimum": 0},
          "price":       {"type": "number", "exclusiveMinimum": 0},
          "category_id": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

// bulkSchema se compila una vez; un error aquí es un bug del esquema embebido.
var bulkSchema = jsonschema.MustCompileString("bulk_receipt.json", bulkReceiptSchema)

// validateBulkPayload valida la forma del JSON antes de decodificarlo al DTO.
func validateBulkPayload(body []byte) error {
	// Los números se decodifican como json.Number para validar sin pasar por float64.
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("JSON inválido: %w", err)
	}
	if err := bulkSchema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%s", describe(ve))
		}
		return err
	}
	return nil
}

// describe toma la causa más profunda: es la que nombra el campo concreto.
func describe(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return loc + ": " + ve.Message
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const createTodoSchema = `{
	"type": "object",
	"required": ["text"],
	"properties": {
		"text": {"type": "string"}
	}
}`

const updateTodoSchema = `{
	"type": "object",
	"properties": {
		"completed": {"type": "boolean"},
		"text": {"type": "string"}
	}
}`

var (
	createSchema = jsonschema.MustCompileString("create_todo.json", createTodoSchema)
	updateSchema = jsonschema.MustCompileString("update_todo.json", updateTodoSchema)
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errInvalidBody marks request bodies that are not valid JSON or fail the schema.
var errInvalidBody = errors.New("invalid request body")

// decodeBody reads r, validates it against schema and decodes it into dst.
func decodeBody(r io.Reader, schema *jsonschema.Schema, dst any) error {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", errInvalidBody, schemaMessage(err))
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

// schemaMessage flattens a validation error into one line.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	collectSchemaMessages(ve, &msgs)
	if len(msgs) == 0 {
		return ve.Message
	}
	return strings.Join(msgs, "; ")
}

func collectSchemaMessages(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaMessages(cause, msgs)
	}
}

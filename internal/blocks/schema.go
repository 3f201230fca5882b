package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid  = errors.New("blocks: content schema invalid")
	ErrContentInvalid = errors.New("blocks: content does not match schema")
)

// Issue is one schema violation.
type Issue struct {
	Location string
	Message  string
}

// ContentError lists the schema violations of a payload.
type ContentError struct {
	Type   Type
	Issues []Issue
}

func (e *ContentError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s (%s): %s", ErrContentInvalid.Error(), e.Type, strings.Join(parts, "; "))
}

func (e *ContentError) Unwrap() error { return ErrContentInvalid }

type compiledSchema struct {
	schema *jsonschema.Schema
}

func compileSchema(t Type, schema map[string]any) (*compiledSchema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, t, err)
	}
	url := string(t) + ".schema.json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, t, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, t, err)
	}
	return &compiledSchema{schema: compiled}, nil
}

// ValidateContent checks one language slice against the schema of t. Types
// registered without a schema accept any payload.
func (r *Registry) ValidateContent(t Type, payload map[string]any) error {
	if !r.Has(t) {
		return fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	compiled := r.schemas[t]
	if compiled == nil {
		return nil
	}
	normalized, err := normalizePayload(payload)
	if err != nil {
		return err
	}
	if err := compiled.schema.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ContentError{Type: t, Issues: collectIssues(verr)}
		}
		return &ContentError{Type: t, Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

// ValidateBlock validates every language slice of b.
func (r *Registry) ValidateBlock(b Block) error {
	if _, ok := b.Content[BaseLanguage]; !ok {
		return fmt.Errorf("%w: block %s", ErrBaseContentMissing, b.ID)
	}
	for _, lang := range b.Content.Languages() {
		if err := r.ValidateContent(b.Type, b.Content[lang]); err != nil {
			return fmt.Errorf("language %s: %w", lang, err)
		}
	}
	return nil
}

// normalizePayload round trips through JSON so Go ints and typed slices reach
// the validator as plain JSON values.
func normalizePayload(payload map[string]any) (any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode payload: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("blocks: decode payload: %w", err)
	}
	return out, nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

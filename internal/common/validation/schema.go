package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"topic-communities/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error joins all failures into one message.
func (vr *ValidationResult) Error() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			return true
		}
	}
	return false
}

// Contract validates the input and output documents of one task type.
type Contract struct {
	TaskType string
	input    *gojsonschema.Schema
	output   *gojsonschema.Schema
}

// NewContract compiles the schemas registered for taskType.
func NewContract(reg *registry.ActivityRegistry, taskType string) (*Contract, error) {
	act, ok := reg.Find(taskType)
	if !ok {
		return nil, fmt.Errorf("activity %q not found in registry", taskType)
	}

	c := &Contract{TaskType: taskType}
	var err error
	if c.input, err = compile(act.InputSchema); err != nil {
		return nil, fmt.Errorf("compile input schema for %s: %w", taskType, err)
	}
	if c.output, err = compile(act.OutputSchema); err != nil {
		return nil, fmt.Errorf("compile output schema for %s: %w", taskType, err)
	}
	return c, nil
}

// MustContract is NewContract for schemas known at build time.
func MustContract(reg *registry.ActivityRegistry, taskType string) *Contract {
	c, err := NewContract(reg, taskType)
	if err != nil {
		panic(err)
	}
	return c
}

func compile(schema map[string]interface{}) (*gojsonschema.Schema, error) {
	if len(schema) == 0 {
		return nil, nil
	}
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
}

// ValidateInput checks a document against the input schema.
func (c *Contract) ValidateInput(doc interface{}) *ValidationResult {
	return validate(c.input, doc)
}

// ValidateOutput checks a document against the output schema.
func (c *Contract) ValidateOutput(doc interface{}) *ValidationResult {
	return validate(c.output, doc)
}

// ValidateInputJSON checks raw JSON against the input schema.
func (c *Contract) ValidateInputJSON(raw []byte) *ValidationResult {
	return validateLoader(c.input, gojsonschema.NewBytesLoader(raw))
}

// ValidateOutputJSON checks raw JSON against the output schema.
func (c *Contract) ValidateOutputJSON(raw []byte) *ValidationResult {
	return validateLoader(c.output, gojsonschema.NewBytesLoader(raw))
}

func validate(schema *gojsonschema.Schema, doc interface{}) *ValidationResult {
	// Round-trip structs through JSON so field names follow their tags.
	data, err := json.Marshal(doc)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field: "(root)", Message: err.Error(), Code: "INVALID_DOCUMENT",
		}}}
	}
	return validateLoader(schema, gojsonschema.NewBytesLoader(data))
}

func validateLoader(schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) *ValidationResult {
	if schema == nil {
		return &ValidationResult{Valid: true}
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{
			Field: "(root)", Message: err.Error(), Code: "INVALID_DOCUMENT",
		}}}
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out
}

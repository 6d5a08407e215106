package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 2},
    "age": {"type": "integer", "minimum": 0}
  }
}`

func TestSchema_ValidateJSON(t *testing.T) {
	s := MustCompile(personSchema)

	tests := []struct {
		name   string
		doc    string
		valid  bool
		fields []string
	}{
		{"valid", `{"name":"Jane","age":40}`, true, nil},
		{"missing required", `{"age":40}`, false, []string{"(root)"}},
		{"wrong type", `{"name":"Jane","age":"forty"}`, false, []string{"age"}},
		{"below minimum", `{"name":"Jane","age":-1}`, false, []string{"age"}},
		{"too short", `{"name":"J"}`, false, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.ValidateJSON([]byte(tt.doc))
			require.NoError(t, err)

			assert.Equal(t, tt.valid, res.Valid)
			var fields []string
			for _, e := range res.Errors {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Code)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestSchema_ValidateJSON_NotJSON(t *testing.T) {
	s := MustCompile(personSchema)

	_, err := s.ValidateJSON([]byte(`{"name":`))
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	res := &ValidationResult{Errors: []ValidationError{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}}
	assert.Equal(t, "a: bad; b: worse", res.Summary())
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`{"type": "nonsense"}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`not json`) })
}

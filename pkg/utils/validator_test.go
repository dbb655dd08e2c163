package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name string   `validate:"required" message:"sample.name must be present"`
	Year int      `validate:"gt=0" message:"sample.year must be a Positive value"`
	Tags []string `validate:"required,min=1,dive,required" message:"sample.tags must be present"`
	Note string   `validate:"max=3"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name  string
		input sample
		want  []string
	}{
		{
			name:  "valid",
			input: sample{Name: "x", Year: 1, Tags: []string{"a"}},
			want:  nil,
		},
		{
			name:  "every field invalid is sorted",
			input: sample{Year: -1, Tags: []string{""}, Note: "toolong"},
			want: []string{
				"Note maximum is 3",
				"sample.name must be present",
				"sample.tags must be present",
				"sample.year must be a Positive value",
			},
		},
		{
			name:  "nil list",
			input: sample{Name: "x", Year: 2},
			want:  []string{"sample.tags must be present"},
		},
		{
			name:  "one message per blank element",
			input: sample{Name: "x", Year: 2, Tags: []string{"", "ok", ""}},
			want:  []string{"sample.tags must be present", "sample.tags must be present"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateStruct(&tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	msgs := ValidateStruct(sample{Year: 0, Tags: []string{"a"}})

	assert.Equal(t, "sample.name must be present,sample.year must be a Positive value", FormatValidationErrors(msgs))
	assert.Equal(t, "", FormatValidationErrors(nil))
}

type scored struct {
	Score *float64 `validate:"required,min=0" message:"score.negative" message_required:"score.missing"`
}

func TestValidateStructPerConstraintMessage(t *testing.T) {
	negative := -1.0
	zero := 0.0

	assert.Equal(t, []string{"score.missing"}, ValidateStruct(scored{}))
	assert.Equal(t, []string{"score.negative"}, ValidateStruct(scored{Score: &negative}))
	assert.Nil(t, ValidateStruct(scored{Score: &zero}))
}

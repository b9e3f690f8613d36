package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type candidate struct {
	Name  string `json:"donorName" validate:"required"`
	Score int    `json:"matchScore" validate:"min=0,max=100"`
}

type batch struct {
	Items []candidate `json:"matches" validate:"min=3,max=5,dive"`
}

func TestValidateUsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(candidate{Score: 120})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "donorName", fields[0].Field)
	assert.Equal(t, "required", fields[0].Rule)
	assert.Equal(t, "matchScore", fields[1].Field)
	assert.Equal(t, "must be at most 100", fields[1].Message)
	assert.Equal(t, "donorName is required; matchScore must be at most 100", err.Error())
}

func TestValidateDivesIntoSlices(t *testing.T) {
	v := New()

	ok := batch{Items: []candidate{{Name: "a", Score: 1}, {Name: "b", Score: 2}, {Name: "c", Score: 3}}}
	assert.NoError(t, v.Validate(ok))

	tooFew := batch{Items: ok.Items[:2]}
	fields := FieldErrors(v.Validate(tooFew))
	require.Len(t, fields, 1)
	assert.Equal(t, "matches", fields[0].Field)

	bad := batch{Items: append([]candidate{{Score: -1}}, ok.Items...)}
	fields = FieldErrors(v.Validate(bad))
	require.Len(t, fields, 2)
	assert.Equal(t, "matches[0].donorName", fields[0].Field)
	assert.Equal(t, "matches[0].matchScore", fields[1].Field)
}

func TestValidateField(t *testing.T) {
	v := New()
	assert.NoError(t, v.ValidateField("email", "jane.doe@email.com", "required,email"))
	assert.EqualError(t, v.ValidateField("email", "nope", "required,email"), "email must be a valid email")
}

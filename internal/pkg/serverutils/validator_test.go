package serverutils

import (
	"testing"

	"propdesk-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	PropertyId string `json:"property_id" validate:"required"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=internal external"`
	Hidden     string `json:"-" validate:"omitempty,max=2"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(&sampleRequest{})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.EqualError(t, err, "property_id is required")

	err = ValidateRequest(&sampleRequest{PropertyId: "p1", Visibility: "public"})
	assert.EqualError(t, err, "visibility must be one of: internal external")

	err = ValidateRequest(&sampleRequest{PropertyId: "p1", Hidden: "long"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.NoError(t, ValidateRequest(&sampleRequest{PropertyId: "p1", Visibility: "external"}))
}

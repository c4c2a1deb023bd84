package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: Validation("title is required"), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("document not found"), want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("show: %w", NotFound("document not found")), want: http.StatusNotFound},
		{name: "plain not found message", err: errors.New("property not found"), want: http.StatusNotFound},
		{name: "not accessible message", err: errors.New("document not accessible"), want: http.StatusNotFound},
		{name: "upstream", err: Upstream(errors.New("conn refused"), "failed to query documents"), want: http.StatusInternalServerError},
		{name: "render", err: Render(errors.New("boom"), "render failed"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFound("association not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, NotFound("association not found"))
	assert.NotErrorIs(t, err, NotFound("document not found"))
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstream(cause, "failed to create document")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create document: connection reset", err.Error())
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Equal(t, KindUpstream, KindOf(errors.New("other")))
	assert.Equal(t, KindValidation, KindOf(Validation("x")))
}

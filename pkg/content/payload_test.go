package content

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectFile(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello world"))

	facts, err := Inspect(TypeFile, payload)
	require.NoError(t, err)
	require.NotNil(t, facts)
	assert.Equal(t, int64(11), facts.Size)
	assert.Equal(t, "11B", facts.SizeHuman)
	assert.Zero(t, facts.PageCount)
}

func TestInspectRejectsBadPayloads(t *testing.T) {
	_, err := Inspect(TypeFile, "%%% not base64")
	assert.ErrorIs(t, err, ErrInvalidBase64)

	_, err = Inspect(TypeEscalationPolicy, "{broken")
	assert.ErrorIs(t, err, ErrInvalidJSON)

	facts, err := Inspect(TypeEscalationPolicy, `{"steps":[]}`)
	assert.NoError(t, err)
	assert.Nil(t, facts)

	facts, err = Inspect(TypeMarkdown, "# anything")
	assert.NoError(t, err)
	assert.Nil(t, facts)
}

func TestInspectPdfThatDoesNotParse(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("not really a pdf"))

	facts, err := Inspect(TypePdf, payload)
	require.NoError(t, err)
	assert.Error(t, facts.PageCountErr)
	assert.Equal(t, int64(16), facts.Size)
}

func TestDecodeBinaryDataURL(t *testing.T) {
	raw, err := DecodeBinary("data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), raw)
}

func TestFactsApplyKeepsSuppliedValues(t *testing.T) {
	facts := &Facts{Size: 10, SizeHuman: "10B", PageCount: 3}

	md := facts.Apply(map[string]interface{}{"size": 99})
	assert.Equal(t, 99, md["size"])
	assert.Equal(t, "10B", md["size_human"])
	assert.Equal(t, 3, md["page_count"])

	var none *Facts
	assert.Nil(t, none.Apply(nil))
}

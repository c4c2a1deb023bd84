package content

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document types with payload rules. Other types are opaque text.
const (
	TypeMarkdown         = "markdown"
	TypeFile             = "file"
	TypePdf              = "pdf"
	TypeEscalationPolicy = "escalation_policy"
)

var (
	ErrInvalidBase64 = errors.New("content must be base64 encoded")
	ErrInvalidJSON   = errors.New("content must be valid JSON")
)

// Facts are metadata values derived from a payload.
type Facts struct {
	Size      int64
	SizeHuman string
	PageCount int
	// PageCountErr is set when a pdf payload did not parse. It does not invalidate the payload.
	PageCountErr error
}

// Inspect validates the payload for its type and derives size facts for binary types.
// A nil Facts with a nil error means the type carries nothing to derive.
func Inspect(docType string, payload string) (*Facts, error) {
	switch docType {
	case TypeFile, TypePdf:
		if payload == "" {
			return nil, nil
		}
		raw, err := DecodeBinary(payload)
		if err != nil {
			return nil, err
		}
		facts := &Facts{
			Size:      int64(len(raw)),
			SizeHuman: units.BytesSize(float64(len(raw))),
		}
		if docType == TypePdf {
			facts.PageCount, facts.PageCountErr = PageCount(raw)
		}
		return facts, nil
	case TypeEscalationPolicy:
		if payload != "" && !json.Valid([]byte(payload)) {
			return nil, ErrInvalidJSON
		}
	}
	return nil, nil
}

// DecodeBinary accepts standard base64 with or without a data URL prefix.
func DecodeBinary(payload string) ([]byte, error) {
	if i := strings.Index(payload, ";base64,"); i >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return raw, nil
}

func PageCount(raw []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return count, nil
}

// Apply writes facts into metadata without overwriting values the caller supplied.
func (f *Facts) Apply(metadata map[string]interface{}) map[string]interface{} {
	if f == nil {
		return metadata
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	setDefault(metadata, "size", f.Size)
	setDefault(metadata, "size_human", f.SizeHuman)
	if f.PageCount > 0 {
		setDefault(metadata, "page_count", f.PageCount)
	}
	return metadata
}

func setDefault(m map[string]interface{}, k string, v interface{}) {
	if _, ok := m[k]; !ok {
		m[k] = v
	}
}

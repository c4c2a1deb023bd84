// Package content locates a document's text across the field names and envelopes
// different producers have used, and turns a document payload into downloadable bytes.
package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Resolved is a document read through the tolerant rules.
type Resolved struct {
	Id         string
	Title      string
	Type       string
	Visibility string
	Content    string
	Version    int
	Metadata   map[string]interface{}
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Resolve never fails. If raw.data is an object the object is treated as the document.
// Content is raw.content when it is a non-empty string, else raw.data when it is a string, else "".
func Resolve(raw map[string]interface{}) Resolved {
	if inner, ok := raw["data"].(map[string]interface{}); ok {
		raw = inner
	}

	r := Resolved{
		Id:         stringField(raw, "id"),
		Title:      stringField(raw, "title"),
		Type:       stringField(raw, "type"),
		Visibility: stringField(raw, "visibility"),
		Content:    Text(raw["content"], raw["data"]),
		CreatedAt:  timeField(raw, "created_at", "createdAt"),
		UpdatedAt:  timeField(raw, "updated_at", "updatedAt"),
	}
	if md, ok := raw["metadata"].(map[string]interface{}); ok {
		r.Metadata = md
	}
	if v, ok := raw["version"].(float64); ok {
		r.Version = int(v)
	}
	return r
}

// ResolveJSON decodes body as a JSON object and resolves it.
func ResolveJSON(body []byte) (Resolved, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Resolved{}, fmt.Errorf("decode document: %w", err)
	}
	return Resolve(raw), nil
}

// Text picks the payload text out of the two candidate fields.
func Text(content interface{}, data interface{}) string {
	if s, ok := content.(string); ok && s != "" {
		return s
	}
	if s, ok := data.(string); ok {
		return s
	}
	return ""
}

// Canonical is Text for ingress. A structured data payload (an escalation policy posted as an
// object) is kept as its JSON encoding instead of being dropped.
func Canonical(content interface{}, data interface{}) string {
	if s := Text(content, data); s != "" {
		return s
	}
	switch data.(type) {
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(data)
		if err == nil {
			return string(b)
		}
	}
	return ""
}

func stringField(raw map[string]interface{}, name string) string {
	s, _ := raw[name].(string)
	return s
}

func timeField(raw map[string]interface{}, names ...string) time.Time {
	for _, name := range names {
		s, ok := raw[name].(string)
		if !ok || s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

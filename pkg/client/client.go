// Package client is a typed HTTP client for the document service.
// Responses are read with the tolerant content rules, so payloads from older producers
// (content under data, nested envelopes, camelCase timestamps) decode the same way.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"propdesk-be/pkg/content"
)

const organizationHeader = "X-Organization-ID"

type Client struct {
	baseURL        string
	organizationId string
	http           *http.Client
}

type Option func(*Client)

func WithOrganization(id string) Option {
	return func(c *Client) { c.organizationId = id }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("document api error (status %d): %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Association struct {
	DocumentId string                 `json:"document_id"`
	TargetKind string                 `json:"target_kind"`
	TargetId   string                 `json:"target_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

type Document struct {
	content.Resolved
	Associations []Association
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Resolved = content.Resolve(raw)

	if inner, ok := raw["data"].(map[string]interface{}); ok {
		raw = inner
	}
	d.Associations = nil
	if links, ok := raw["associations"]; ok && links != nil {
		encoded, err := json.Marshal(links)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(encoded, &d.Associations); err != nil {
			return err
		}
	}
	return nil
}

type DocumentList struct {
	Items      []Document `json:"items"`
	HasMore    bool       `json:"hasMore"`
	TotalCount int64      `json:"totalCount"`
}

type ListOptions struct {
	Title      string
	Type       string
	Visibility string
	PropertyId string
	PersonId   string
	GroupId    string
	Page       int
	PageSize   int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("title", o.Title)
	set("type", o.Type)
	set("visibility", o.Visibility)
	set("property_id", o.PropertyId)
	set("person_id", o.PersonId)
	set("group_id", o.GroupId)
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	return q
}

type CreateInput struct {
	Title      string                 `json:"title"`
	Type       string                 `json:"type"`
	Visibility string                 `json:"visibility,omitempty"`
	Content    string                 `json:"content,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateInput sends only the non-nil fields.
type UpdateInput struct {
	Title      *string                `json:"title,omitempty"`
	Type       *string                `json:"type,omitempty"`
	Visibility *string                `json:"visibility,omitempty"`
	Content    *string                `json:"content,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

type RenderResult struct {
	Id          string `json:"id"`
	Type        string `json:"type"`
	Rendered    bool   `json:"rendered"`
	HTML        string `json:"html"`
	Content     string `json:"content"`
	DownloadURL string `json:"download_url"`
}

type DownloadLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *Client) ListDocuments(ctx context.Context, opts ListOptions) (*DocumentList, error) {
	path := "/api/v1/documents"
	if q := opts.query().Encode(); q != "" {
		path += "?" + q
	}
	var out DocumentList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodGet, documentPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDocument(ctx context.Context, in CreateInput) (*Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodPost, "/api/v1/documents", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDocument(ctx context.Context, id string, in UpdateInput) (*Document, error) {
	var out Document
	if err := c.do(ctx, http.MethodPut, documentPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, documentPath(id), nil, nil)
}

// Associate links a document to a property ("properties"), person ("people") or tag ("tags").
// created is false when the link already existed.
func (c *Client) Associate(ctx context.Context, segment string, documentId string, targetId string, metadata map[string]interface{}) (created bool, err error) {
	field, ok := segmentFields[segment]
	if !ok {
		return false, fmt.Errorf("unknown association segment %q", segment)
	}
	body := map[string]interface{}{field: targetId}
	if metadata != nil {
		body["metadata"] = metadata
	}

	status, _, err := c.send(ctx, http.MethodPost, documentPath(documentId)+"/"+segment, body)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

func (c *Client) Disassociate(ctx context.Context, segment string, documentId string, targetId string) error {
	if _, ok := segmentFields[segment]; !ok {
		return fmt.Errorf("unknown association segment %q", segment)
	}
	return c.do(ctx, http.MethodDelete, documentPath(documentId)+"/"+segment+"/"+url.PathEscape(targetId), nil, nil)
}

func (c *Client) Render(ctx context.Context, id string) (*RenderResult, error) {
	var out RenderResult
	if err := c.do(ctx, http.MethodGet, documentPath(id)+"/render", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DownloadLink(ctx context.Context, id string) (*DownloadLink, error) {
	var out DownloadLink
	if err := c.do(ctx, http.MethodGet, documentPath(id)+"/download-url", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Download fetches the attachment the server builds for a document.
func (c *Client) Download(ctx context.Context, id string) (*content.Download, error) {
	req, err := c.newRequest(ctx, http.MethodGet, documentPath(id)+"/download", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	d := &content.Download{ContentType: resp.Header.Get("Content-Type"), Body: body}
	if _, params, err := parseDisposition(resp.Header.Get("Content-Disposition")); err == nil {
		d.Filename = params["filename"]
	}
	return d, nil
}

// DownloadMarkdown tries the server download first. When the call fails it builds the
// markdown file locally from the document's resolved content. The returned error is the
// server failure, set only alongside a fallback result.
func (c *Client) DownloadMarkdown(ctx context.Context, doc *Document) (*content.Download, error) {
	d, err := c.Download(ctx, doc.Id)
	if err == nil {
		return d, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	local, buildErr := content.BuildDownload(doc.Title, content.TypeMarkdown, doc.Content, doc.Metadata)
	if buildErr != nil {
		return nil, buildErr
	}
	return local, err
}

var segmentFields = map[string]string{
	"properties": "property_id",
	"people":     "person_id",
	"tags":       "tag_id",
}

func documentPath(id string) string {
	return "/api/v1/documents/" + url.PathEscape(id)
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.organizationId != "" {
		req.Header.Set(organizationHeader, c.organizationId)
	}
	return req, nil
}

func (c *Client) send(ctx context.Context, method string, path string, body interface{}) (int, []byte, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return resp.StatusCode, bodyBytes, decodeAPIError(resp.StatusCode, bodyBytes)
	}
	return resp.StatusCode, bodyBytes, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	_, bodyBytes, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bodyBytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Message == "" {
		envelope.Message = strings.TrimSpace(string(body))
	}
	if envelope.Message == "" {
		envelope.Message = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: envelope.Message}
}

package dto

import (
	"time"

	"propdesk-be/pkg/content"
)

// CreateDocumentRequest accepts the payload under either content or data.
type CreateDocumentRequest struct {
	Title      string                 `json:"title" validate:"required"`
	Type       string                 `json:"type" validate:"required"`
	Visibility string                 `json:"visibility" validate:"omitempty,oneof=internal external confidential"`
	Content    interface{}            `json:"content"`
	Data       interface{}            `json:"data"`
	Metadata   map[string]interface{} `json:"metadata"`
}

func (r *CreateDocumentRequest) CanonicalContent() string {
	return content.Canonical(r.Content, r.Data)
}

// UpdateDocumentRequest is partial. Nil fields are left unchanged.
type UpdateDocumentRequest struct {
	Id         string                 `json:"-"`
	Title      *string                `json:"title"`
	Type       *string                `json:"type"`
	Visibility *string                `json:"visibility"`
	Content    interface{}            `json:"content"`
	Data       interface{}            `json:"data"`
	Metadata   map[string]interface{} `json:"metadata"`
}

func (r *UpdateDocumentRequest) HasContent() bool {
	return r.Content != nil || r.Data != nil
}

func (r *UpdateDocumentRequest) CanonicalContent() string {
	return content.Canonical(r.Content, r.Data)
}

type ListDocumentsRequest struct {
	Title      string `query:"title"`
	Type       string `query:"type"`
	Visibility string `query:"visibility"`
	PropertyId string `query:"property_id"`
	PersonId   string `query:"person_id"`
	GroupId    string `query:"group_id"`
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
}

// DocumentResponse carries the payload under both content and the legacy data key.
type DocumentResponse struct {
	Id             string                 `json:"id"`
	OrganizationId string                 `json:"organization_id"`
	Title          string                 `json:"title"`
	Type           string                 `json:"type"`
	Visibility     string                 `json:"visibility"`
	Content        string                 `json:"content"`
	Data           string                 `json:"data"`
	Metadata       map[string]interface{} `json:"metadata"`
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      *time.Time             `json:"updated_at"`
	Associations   []*AssociationResponse `json:"associations,omitempty"`
}

type DocumentListResponse struct {
	Items      []*DocumentResponse `json:"items"`
	HasMore    bool                `json:"hasMore"`
	TotalCount int64               `json:"totalCount"`
}

type DeleteDocumentResponse struct {
	Success bool   `json:"success"`
	Id      string `json:"id"`
}

type RenderDocumentResponse struct {
	Id          string `json:"id"`
	Type        string `json:"type"`
	Rendered    bool   `json:"rendered"`
	Html        string `json:"html,omitempty"`
	Content     string `json:"content"`
	DownloadUrl string `json:"download_url,omitempty"`
}

type DownloadLinkResponse struct {
	Url       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SearchDocumentsRequest struct {
	Query string `query:"q"`
	Limit int    `query:"limit"`
}

type SearchHitResponse struct {
	Id         string `json:"id"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Visibility string `json:"visibility"`
}

type SearchDocumentsResponse struct {
	Items []*SearchHitResponse `json:"items"`
	// Source is "index" when meilisearch answered and "store" for the fallback.
	Source string `json:"source"`
}

// DocumentEventMessage is published on the document topic for every write.
type DocumentEventMessage struct {
	Type           string `json:"type"`
	DocumentId     string `json:"document_id"`
	OrganizationId string `json:"organization_id"`
	TargetKind     string `json:"target_kind,omitempty"`
	TargetId       string `json:"target_id,omitempty"`
}

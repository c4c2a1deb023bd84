package constant

import "propdesk-be/pkg/content"

// Document visibility tiers.
const (
	VisibilityInternal     = "internal"
	VisibilityExternal     = "external"
	VisibilityConfidential = "confidential"
)

// Known document types. The type column is open-ended; only markdown has its own rendering path.
const (
	DocumentTypeMarkdown         = content.TypeMarkdown
	DocumentTypeFile             = content.TypeFile
	DocumentTypePdf              = content.TypePdf
	DocumentTypeEscalationPolicy = content.TypeEscalationPolicy
)

// Document lifecycle events (watermill topic payload "type" + NATS subject suffix).
const (
	EventDocumentCreated       = "DOCUMENT_CREATED"
	EventDocumentUpdated       = "DOCUMENT_UPDATED"
	EventDocumentDeleted       = "DOCUMENT_DELETED"
	EventDocumentAssociated    = "DOCUMENT_ASSOCIATED"
	EventDocumentDisassociated = "DOCUMENT_DISASSOCIATED"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Header carrying the caller's organization. Authentication happens upstream.
	OrganizationHeader = "X-Organization-ID"
	OrganizationLocal  = "organization_id"
)

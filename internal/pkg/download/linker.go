// Package download issues short-lived links for document downloads.
package download

import (
	"context"
	"errors"
	"strings"
	"time"

	"propdesk-be/pkg/content"
)

var ErrTokenNotFound = errors.New("download link not found or expired")

// Ticket is what a token resolves to. The bytes are rebuilt from the document on redemption.
type Ticket struct {
	OrganizationId string    `json:"organization_id"`
	DocumentId     string    `json:"document_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type Link struct {
	URL       string
	ExpiresAt time.Time
}

type Linker interface {
	// Link returns a URL for the download. Token based linkers ignore d's body.
	Link(ctx context.Context, organizationId string, documentId string, d *content.Download) (*Link, error)
	// Resolve redeems a token issued by Link. ErrTokenNotFound when unknown or expired.
	Resolve(ctx context.Context, token string) (*Ticket, error)
}

// TokenPath is the route tokens are redeemed on.
const TokenPath = "/api/v1/downloads/"

func tokenURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + TokenPath + token
}

package content

import (
	"mime"
	"net/http"
	"strings"
)

// Download is a ready-to-send attachment.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ContentDisposition renders the attachment header value.
func (d *Download) ContentDisposition() string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename})
}

// BuildDownload turns a document payload into bytes.
// markdown is served as text, file and pdf payloads are decoded from base64, escalation policies
// are served as JSON and anything else as plain text.
func BuildDownload(title string, docType string, payload string, metadata map[string]interface{}) (*Download, error) {
	name := filenameBase(title)

	switch docType {
	case TypeMarkdown:
		return &Download{
			Filename:    name + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Body:        []byte(payload),
		}, nil
	case TypeFile, TypePdf:
		raw, err := DecodeBinary(payload)
		if err != nil {
			return nil, err
		}
		filename, _ := metadata["filename"].(string)
		if filename == "" {
			filename = name
			if docType == TypePdf {
				filename += ".pdf"
			}
		}
		contentType, _ := metadata["mimetype"].(string)
		if contentType == "" {
			if docType == TypePdf {
				contentType = "application/pdf"
			} else {
				contentType = http.DetectContentType(raw)
			}
		}
		return &Download{Filename: filename, ContentType: contentType, Body: raw}, nil
	case TypeEscalationPolicy:
		return &Download{
			Filename:    name + ".json",
			ContentType: "application/json",
			Body:        []byte(payload),
		}, nil
	default:
		return &Download{
			Filename:    name + ".txt",
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(payload),
		}, nil
	}
}

func filenameBase(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "document"
	}
	return name
}

package payments

import (
	"fmt"
	"mime"
	"strings"
)

const DefaultMaxFileSize int64 = 5 << 20 // 5 MiB

var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// FileInfo describes an attached file as declared by the client.
type FileInfo struct {
	Filename    string
	ContentType string
	Size        int64
}

// Submission is the raw, unvalidated form input.
type Submission struct {
	Name          string
	PhoneNumber   string
	PaymentMethod string
	Reason        string
	File          *FileInfo
}

// Draft is a validated submission that has not been persisted yet.
type Draft struct {
	Name          string
	PhoneNumber   string
	PaymentMethod string
	Reason        string
	File          FileInfo
}

// Policy holds the file constraints applied by Validate.
type Policy struct {
	AllowedTypes []string
	MaxFileSize  int64
}

// DefaultPolicy accepts common image formats up to 5 MiB.
func DefaultPolicy() Policy {
	return Policy{
		AllowedTypes: DefaultAllowedTypes,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

func (p Policy) allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

// Validate checks s against p and returns a Draft. It has no side effects.
func Validate(s Submission, p Policy) (Draft, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"name", s.Name},
		{"phone_number", s.PhoneNumber},
		{"payment_method", s.PaymentMethod},
		{"reason", s.Reason},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return Draft{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	if s.File == nil || s.File.Size == 0 {
		return Draft{}, fmt.Errorf("%w: proof", ErrNoFileAttached)
	}

	contentType := normalizeMediaType(s.File.ContentType)
	if !p.allows(contentType) {
		return Draft{}, fmt.Errorf("%w: %q is not one of %s", ErrUnsupportedMediaType, s.File.ContentType, strings.Join(p.AllowedTypes, ", "))
	}

	maxSize := p.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if s.File.Size > maxSize {
		return Draft{}, fmt.Errorf("%w: %d bytes exceeds limit of %d bytes", ErrFileTooLarge, s.File.Size, maxSize)
	}

	return Draft{
		Name:          strings.TrimSpace(s.Name),
		PhoneNumber:   strings.TrimSpace(s.PhoneNumber),
		PaymentMethod: strings.TrimSpace(s.PaymentMethod),
		Reason:        strings.TrimSpace(s.Reason),
		File: FileInfo{
			Filename:    s.File.Filename,
			ContentType: contentType,
			Size:        s.File.Size,
		},
	}, nil
}

// normalizeMediaType strips parameters and lowercases the type.
func normalizeMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

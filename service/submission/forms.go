package submission

import (
	"fmt"
	"strings"

	"github.com/brojonat/curioweave/service/feed"
)

// ValidationError is a user-facing form error. Forms that fail validation
// never reach the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ProfileForm is the profile creation form.
type ProfileForm struct {
	FullName  string
	Username  string
	Interests []string // category ids
}

// Validate checks the form in field order and returns the first problem.
func (f ProfileForm) Validate() error {
	if strings.TrimSpace(f.FullName) == "" {
		return invalid("fullName", "please enter your full name")
	}
	if strings.TrimSpace(f.Username) == "" {
		return invalid("username", "please enter a username")
	}
	if len(f.Interests) == 0 {
		return invalid("interests", "please select at least one interest")
	}
	for _, id := range f.Interests {
		if !feed.ValidCategory(id) {
			return invalid("interests", fmt.Sprintf("unknown interest %q", id))
		}
	}
	return nil
}

// ContentType is the kind of content being uploaded.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
)

// ContentForm is the content upload form.
type ContentForm struct {
	Title       string
	Excerpt     string
	Category    string // category id
	Tags        []string
	ContentType ContentType
	TextContent string
	MediaURL    string // image or video location
}

// Validate checks the form. A blank content type means text.
func (f ContentForm) Validate() error {
	if f.Title == "" || f.Excerpt == "" || f.Category == "" || len(f.Tags) == 0 {
		return invalid("form", "please fill in all required fields")
	}

	switch f.contentType() {
	case ContentText:
		if f.TextContent == "" {
			return invalid("textContent", "please enter some text content")
		}
	case ContentImage, ContentVideo:
		if f.MediaURL == "" {
			return invalid("mediaUrl", fmt.Sprintf("please provide a URL for the %s", f.ContentType))
		}
	default:
		return invalid("contentType", fmt.Sprintf("unsupported content type %q", f.ContentType))
	}
	return nil
}

func (f ContentForm) contentType() ContentType {
	if f.ContentType == "" {
		return ContentText
	}
	return f.ContentType
}

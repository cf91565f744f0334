// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MaxPostContentLen    = 50000
	MaxCommentContentLen = 10000
	MaxImageURLLen       = 2048
)

// ValidatePostContent checks that post content is present and within bounds.
func ValidatePostContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("Content is required")
	}
	if utf8.RuneCountInString(content) > MaxPostContentLen {
		return fmt.Errorf("Content too long (max %d characters)", MaxPostContentLen)
	}
	return nil
}

// ValidateCommentContent checks that comment content is present and within bounds.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("Content is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentContentLen {
		return fmt.Errorf("Comment too long (max %d characters)", MaxCommentContentLen)
	}
	return nil
}

// ValidateImageURL accepts absolute http and https URLs only.
func ValidateImageURL(raw string) error {
	if len(raw) > MaxImageURLLen {
		return fmt.Errorf("image_url must not exceed %d characters", MaxImageURLLen)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("image_url must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("image_url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("image_url must include a host")
	}
	return nil
}

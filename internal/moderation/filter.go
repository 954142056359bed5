// Package moderation screens QR payloads before they reach the encoder.
package moderation

import (
	"strings"
	"unicode/utf8"
)

// Reason classifies why a text was blocked.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonTooLong       Reason = "TEXT_TOO_LONG"
	ReasonBannedKeyword Reason = "BANNED_KEYWORD"
)

// Filter is a stateless text classifier: length bound plus a
// case-insensitive banned-substring check.
type Filter struct {
	maxLen   int
	keywords []string // lowercase
}

func New(maxLen int, keywords []string) *Filter {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &Filter{maxLen: maxLen, keywords: lowered}
}

// Classify reports whether text must be rejected and why.
func (f *Filter) Classify(text string) (bool, Reason) {
	if utf8.RuneCountInString(text) > f.maxLen {
		return true, ReasonTooLong
	}
	lower := strings.ToLower(text)
	for _, k := range f.keywords {
		if strings.Contains(lower, k) {
			return true, ReasonBannedKeyword
		}
	}
	return false, ReasonNone
}

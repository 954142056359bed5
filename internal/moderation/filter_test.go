package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testFilter() *Filter {
	return New(500, []string{"scam", "phishing", "malware"})
}

func TestClassify_TooLong(t *testing.T) {
	blocked, reason := testFilter().Classify(strings.Repeat("a", 501))
	assert.True(t, blocked)
	assert.Equal(t, ReasonTooLong, reason)
}

func TestClassify_ExactLimitAllowed(t *testing.T) {
	blocked, reason := testFilter().Classify(strings.Repeat("a", 500))
	assert.False(t, blocked)
	assert.Equal(t, ReasonNone, reason)
}

func TestClassify_LengthCountsRunes(t *testing.T) {
	// 500 multi-byte runes are within the limit even though the byte
	// length is far above it.
	blocked, _ := testFilter().Classify(strings.Repeat("ක", 500))
	assert.False(t, blocked)
}

func TestClassify_BannedKeyword(t *testing.T) {
	blocked, reason := testFilter().Classify("visit this scam site")
	assert.True(t, blocked)
	assert.Equal(t, ReasonBannedKeyword, reason)
}

func TestClassify_BannedKeywordCaseInsensitive(t *testing.T) {
	blocked, reason := testFilter().Classify("PHISHING link here")
	assert.True(t, blocked)
	assert.Equal(t, ReasonBannedKeyword, reason)
}

func TestClassify_Clean(t *testing.T) {
	blocked, reason := testFilter().Classify("hello world")
	assert.False(t, blocked)
	assert.Equal(t, ReasonNone, reason)
}

func TestClassify_LengthCheckedBeforeKeywords(t *testing.T) {
	blocked, reason := testFilter().Classify(strings.Repeat("scam ", 200))
	assert.True(t, blocked)
	assert.Equal(t, ReasonTooLong, reason)
}

package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "abc", TruncateContent("abc", 5))
	assert.Equal(t, "abc", TruncateContent("abcde", 3))
	assert.Equal(t, "", TruncateContent("abc", 0))
}

func TestTruncateContent_DoesNotSplitRunes(t *testing.T) {
	s := strings.Repeat("ක", 10)
	got := TruncateContent(s, 4)
	assert.Equal(t, strings.Repeat("ක", 4), got)
}

func TestSummarizeByUser(t *testing.T) {
	records := []HistoryRecord{
		{UserID: 1, Username: "alice", Content: "a"},
		{UserID: 2, Username: "bob", Content: "b"},
		{UserID: 1, Username: "alice", Content: "c"},
		{UserID: 1, Username: "alice", Content: "d"},
	}
	got := SummarizeByUser(records)
	assert.Equal(t, []UserCount{
		{UserID: 1, Username: "alice", Count: 3},
		{UserID: 2, Username: "bob", Count: 1},
	}, got)
}

func TestSummarizeByUser_Empty(t *testing.T) {
	assert.Empty(t, SummarizeByUser(nil))
}

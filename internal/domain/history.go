package domain

import "time"

// MaxContentLen bounds the QR payload stored per history row.
const MaxContentLen = 100

// HistoryRecord is one accepted generation, append-only.
type HistoryRecord struct {
	ID        int64
	UserID    int64
	Username  string
	Content   string // truncated to MaxContentLen runes
	CreatedAt time.Time
}

// TruncateContent cuts s to at most n runes without splitting a rune.
func TruncateContent(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// UserCount is a per-user line in the admin daily summary.
type UserCount struct {
	UserID   int64
	Username string
	Count    int
}

// SummarizeByUser folds history records into per-user counts,
// preserving first-seen order.
func SummarizeByUser(records []HistoryRecord) []UserCount {
	type key struct {
		id   int64
		name string
	}
	index := make(map[key]int)
	var out []UserCount
	for _, r := range records {
		k := key{r.UserID, r.Username}
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, UserCount{UserID: r.UserID, Username: r.Username, Count: 1})
	}
	return out
}

package model

import "strings"

// RetrievalMode selects between similarity-only and blended retrieval.
type RetrievalMode string

const (
	ModeVector RetrievalMode = "vector"
	ModeHybrid RetrievalMode = "hybrid"
)

// ParseMode maps a request string onto a mode, defaulting to vector for
// anything unrecognized (including the empty string).
func ParseMode(s string) RetrievalMode {
	if strings.ToLower(strings.TrimSpace(s)) == string(ModeHybrid) {
		return ModeHybrid
	}
	return ModeVector
}

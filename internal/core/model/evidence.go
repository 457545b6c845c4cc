package model

import "sort"

// EvidenceItem is one normalized retrieved passage. Items live for the
// duration of a single query and are never cached across queries.
type EvidenceItem struct {
	Text     string                 `json:"text"`
	Score    *float64               `json:"score,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// IdentitySet holds the graph identifiers recovered from evidence metadata.
// Strong identifiers (element ids) are durable; legacy identifiers are
// positional numeric ids valid only within one store instance. The two sets
// are unioned, never intersected: an entity matches if either side hits.
type IdentitySet struct {
	StrongIDs map[string]struct{}
	LegacyIDs map[int64]struct{}
}

func NewIdentitySet() IdentitySet {
	return IdentitySet{
		StrongIDs: make(map[string]struct{}),
		LegacyIDs: make(map[int64]struct{}),
	}
}

func (s IdentitySet) AddStrong(id string) {
	if id != "" {
		s.StrongIDs[id] = struct{}{}
	}
}

func (s IdentitySet) AddLegacy(id int64) {
	s.LegacyIDs[id] = struct{}{}
}

func (s IdentitySet) Empty() bool {
	return len(s.StrongIDs) == 0 && len(s.LegacyIDs) == 0
}

// StrongList returns the strong identifiers sorted, so the reconciliation
// query sees stable parameters regardless of collection order.
func (s IdentitySet) StrongList() []string {
	out := make([]string, 0, len(s.StrongIDs))
	for id := range s.StrongIDs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s IdentitySet) LegacyList() []int64 {
	out := make([]int64, 0, len(s.LegacyIDs))
	for id := range s.LegacyIDs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

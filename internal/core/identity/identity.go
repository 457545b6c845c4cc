// Package identity recovers graph-entity identifiers from evidence
// metadata. Retrieval payloads sometimes flatten identifiers into fields
// and sometimes surface the matched entity as a nested object, so both the
// top-level keys and every metadata value are scanned.
package identity

import (
	"github.com/movelab/physiorag/internal/core/model"
)

// Accepted key spellings for the two identifier kinds.
var strongKeys = []string{"element_id", "elementId"}
var legacyKeys = []string{"id", "node_id"}

// strongIdentified matches store entities carrying a durable element id.
type strongIdentified interface {
	GetElementId() string
}

// legacyIdentified matches store entities carrying the positional numeric
// id. Those ids are only valid within one store instance's lifetime.
type legacyIdentified interface {
	GetId() int64
}

// Collect scans evidence items for embedded identifiers. The result is a
// union: a strong id is never dropped for lacking a legacy counterpart and
// vice versa. Output is independent of item order.
func Collect(items []model.EvidenceItem) model.IdentitySet {
	ids := model.NewIdentitySet()
	for _, item := range items {
		if item.Metadata == nil {
			continue
		}
		fromMapping(item.Metadata, ids)
		for _, v := range item.Metadata {
			fromValue(v, ids)
		}
	}
	return ids
}

func fromMapping(m map[string]interface{}, ids model.IdentitySet) {
	for _, key := range strongKeys {
		if s, ok := m[key].(string); ok && s != "" {
			ids.AddStrong(s)
		}
	}
	for _, key := range legacyKeys {
		if n, ok := intValue(m[key]); ok {
			ids.AddLegacy(n)
		}
	}
}

func fromValue(v interface{}, ids model.IdentitySet) {
	if e, ok := v.(strongIdentified); ok {
		ids.AddStrong(e.GetElementId())
	}
	if e, ok := v.(legacyIdentified); ok {
		ids.AddLegacy(e.GetId())
	}
	if inner, ok := v.(map[string]interface{}); ok {
		fromMapping(inner, ids)
	}
}

// intValue accepts the integer widths a record value can legitimately
// carry. Fractional floats are rejected: a legacy id is an integer.
func intValue(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

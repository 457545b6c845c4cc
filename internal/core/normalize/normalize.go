// Package normalize converts heterogeneous retrieval payloads into uniform
// evidence items. The retrieval backend returns records whose shape depends
// on the underlying graph schema, so extraction is defensive and
// priority-ordered: a low-quality text is always preferable to aborting
// the pipeline.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/movelab/physiorag/internal/core/model"
)

// textKeys is the field probe order for the passage text, top level first.
var textKeys = []string{"text", "content", "chunk", "caption", "description"}

// nestedTextKeys extends the probe for entity-like inner values, where the
// display name is often the only usable text.
var nestedTextKeys = []string{"text", "content", "chunk", "caption", "description", "name"}

// recordMapper is the capability an opaque retrieval record exposes to
// surrender its columns as a mapping (e.g. a Neo4j result record).
type recordMapper interface {
	AsMap() map[string]interface{}
}

// propertied matches graph entities that expose their property bag
// (nodes and relationships from the store driver).
type propertied interface {
	GetProperties() map[string]interface{}
}

// Items converts every raw retrieval element into an EvidenceItem. It
// never fails and never yields an item with empty text.
func Items(raw []interface{}) []model.EvidenceItem {
	items := make([]model.EvidenceItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, one(r))
	}
	return items
}

func one(raw interface{}) model.EvidenceItem {
	m := asMapping(raw)

	item := model.EvidenceItem{
		Text:     extractText(m),
		Metadata: m,
	}
	if score, ok := floatValue(m["score"]); ok {
		item.Score = &score
	}
	return item
}

// asMapping narrows a raw element to a mapping. Variants, in order of
// preference: plain text, mapping, record exposing a mapping capability,
// graph entity exposing its properties, anything else stringified.
func asMapping(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case string:
		return map[string]interface{}{"text": v}
	case map[string]interface{}:
		return v
	case recordMapper:
		return v.AsMap()
	case propertied:
		return v.GetProperties()
	default:
		return map[string]interface{}{"text": fmt.Sprintf("%v", raw)}
	}
}

func extractText(m map[string]interface{}) string {
	for _, key := range textKeys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}

	// One level deeper: values that look like store entities with gettable
	// properties. Keys are walked in sorted order so the probe is
	// deterministic on records with several entity columns.
	for _, key := range sortedKeys(m) {
		inner, ok := innerMapping(m[key])
		if !ok {
			continue
		}
		for _, k := range nestedTextKeys {
			if s, ok := inner[k].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}

	// Last resort: the string form of the whole mapping.
	return fmt.Sprintf("%v", m)
}

func innerMapping(v interface{}) (map[string]interface{}, bool) {
	switch inner := v.(type) {
	case map[string]interface{}:
		return inner, true
	case propertied:
		return inner.GetProperties(), true
	default:
		return nil, false
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func floatValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

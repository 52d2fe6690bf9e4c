package remote

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Upstream payload shapes vary per service: a bare array, a
// ReferenceHandler-style `{"$values": [...]}` wrapper, or a named envelope
// such as `{"data": [...]}` or `{"users": [...]}`. Field names arrive in
// camelCase or PascalCase depending on the serializer the upstream runs.
// Everything here decodes permissively and substitutes zero values for
// anything absent or malformed.

type object map[string]json.RawMessage

// unwrapList extracts the element list from body, trying `$values` first and
// then each named envelope key. A bare array is returned as-is.
func unwrapList(body []byte, envelopeKeys ...string) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, fmt.Errorf("empty response body")
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("decoding array body: %w", err)
		}
		return items, nil
	}

	var obj object
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("decoding object body: %w", err)
	}

	keys := append([]string{"$values"}, envelopeKeys...)
	for _, key := range keys {
		raw, ok := lookupKey(obj, key)
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("envelope %q is not an array: %w", key, err)
		}
		return items, nil
	}

	return nil, fmt.Errorf("no list envelope found")
}

// unwrapEntity extracts a single object, unwrapping a named envelope if one of
// envelopeKeys is present.
func unwrapEntity(body []byte, envelopeKeys ...string) (object, error) {
	var obj object
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("decoding entity body: %w", err)
	}
	for _, key := range envelopeKeys {
		raw, ok := lookupKey(obj, key)
		if !ok {
			continue
		}
		var inner object
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("envelope %q is not an object: %w", key, err)
		}
		return inner, nil
	}
	return obj, nil
}

func decodeObject(raw json.RawMessage) (object, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// lookupKey tries the key as given, then its PascalCase variant.
func lookupKey(obj object, key string) (json.RawMessage, bool) {
	if raw, ok := obj[key]; ok {
		return raw, true
	}
	if raw, ok := obj[pascal(key)]; ok {
		return raw, true
	}
	return nil, false
}

func pascal(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// fieldString reads a string field; numeric values are stringified so that
// integer upstream ids decode into our string id fields.
func fieldString(obj object, key string) string {
	raw, ok := lookupKey(obj, key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func fieldInt(obj object, key string) int {
	raw, ok := lookupKey(obj, key)
	if !ok {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, perr := strconv.Atoi(strings.TrimSpace(s)); perr == nil {
			return parsed
		}
	}
	return 0
}

func fieldIntPtr(obj object, key string) *int {
	raw, ok := lookupKey(obj, key)
	if !ok || string(raw) == "null" {
		return nil
	}
	n := fieldInt(obj, key)
	return &n
}

func fieldBool(obj object, key string) bool {
	raw, ok := lookupKey(obj, key)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	return false
}

func fieldDecimal(obj object, key string) decimal.Decimal {
	raw, ok := lookupKey(obj, key)
	if !ok || string(raw) == "null" {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err == nil {
		return d
	}
	return decimal.Zero
}

func fieldDecimalPtr(obj object, key string) *decimal.Decimal {
	raw, ok := lookupKey(obj, key)
	if !ok || string(raw) == "null" {
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil
	}
	return &d
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// fieldTime parses the field against the known upstream layouts; a missing or
// unparseable value defaults to fallback.
func fieldTime(obj object, key string, fallback time.Time) time.Time {
	raw, ok := lookupKey(obj, key)
	if !ok {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

func fieldTimePtr(obj object, key string) *time.Time {
	raw, ok := lookupKey(obj, key)
	if !ok || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

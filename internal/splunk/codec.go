// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"encoding/json"
	"strconv"
)

// ResultSet is the decoded JSON document returned by the service. No schema
// is imposed: keys and values pass through exactly as the server sent them.
type ResultSet map[string]any

// IsEmpty reports whether the set holds no fields.
func (r ResultSet) IsEmpty() bool { return len(r) == 0 }

// Rows returns the results array when present. Splunk puts one map per
// matched event there.
func (r ResultSet) Rows() []any {
	rows, _ := r["results"].([]any)
	return rows
}

// decodeBody parses a non-empty JSON response body.
func decodeBody(op string, data []byte) (ResultSet, error) {
	var rs ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return rs, nil
}

// stringField returns the named field as a string. Numeric values are
// formatted without an exponent; the service returns job ids as either.
func stringField(rs ResultSet, key string) string {
	switch v := rs[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatTable(t *testing.T) {
	rs := ResultSet{
		"results": []any{
			map[string]any{"host": "web-1", "count": "42", "_time": "2026-05-01T12:00:00"},
			map[string]any{"host": "web-2", "count": "7"},
		},
	}

	var buf strings.Builder
	FormatTable(rs, &buf)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	header := lines[0]
	for _, want := range []string{"count", "host", "_time"} {
		if !strings.Contains(header, want) {
			t.Errorf("header %q missing column %q", header, want)
		}
	}
	if strings.Index(header, "_time") < strings.Index(header, "host") {
		t.Errorf("internal fields should come after named fields: %q", header)
	}
	if !strings.Contains(out, "web-1") || !strings.Contains(out, "web-2") {
		t.Errorf("output missing row values:\n%s", out)
	}
	if !strings.Contains(out, "2 results") {
		t.Errorf("output missing result count footer:\n%s", out)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	tests := []struct {
		name string
		rs   ResultSet
	}{
		{"nil set", nil},
		{"no results key", ResultSet{"preview": false}},
		{"empty results", ResultSet{"results": []any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			FormatTable(tt.rs, &buf)
			if got := buf.String(); got != "No results.\n" {
				t.Errorf("output = %q, want %q", got, "No results.\n")
			}
		})
	}
}

func TestFormatTableTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", 100)
	rs := ResultSet{
		"results": []any{map[string]any{"_raw": long}},
	}

	var buf strings.Builder
	FormatTable(rs, &buf)

	if strings.Contains(buf.String(), long) {
		t.Error("long values should be truncated for table output")
	}
	if !strings.Contains(buf.String(), "...") {
		t.Error("truncated values should end with an ellipsis")
	}
}

func TestFormatTableTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 60)
	rs := ResultSet{
		"results": []any{map[string]any{"msg": long}},
	}

	var buf strings.Builder
	FormatTable(rs, &buf)
	out := buf.String()

	if !utf8.ValidString(out) {
		t.Error("truncation split a multi-byte rune")
	}
	if !strings.Contains(out, strings.Repeat("é", 37)+"...") {
		t.Errorf("expected the cell cut at a rune boundary:\n%s", out)
	}
}

func TestFormatJSONRoundTrips(t *testing.T) {
	rs := ResultSet{
		"results": []any{map[string]any{"host": "web-1"}},
		"preview": false,
	}

	var buf strings.Builder
	if err := FormatJSON(rs, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["preview"] != false {
		t.Errorf("preview = %v, want false", decoded["preview"])
	}
}

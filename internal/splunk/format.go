// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const maxColWidth = 40

// FormatTable writes the result rows as a fixed-width table to w. Columns
// are the union of row field names, with internal (underscore) fields after
// the rest. Rows that carry no field maps are printed raw.
func FormatTable(rs ResultSet, w io.Writer) {
	rows := rs.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	fields := collectFields(rows)
	if len(fields) == 0 {
		for _, row := range rows {
			fmt.Fprintf(w, "%v\n", row)
		}
		fmt.Fprintf(w, "\n%d results\n", len(rows))
		return
	}

	widths := make([]int, len(fields))
	for i, f := range fields {
		widths[i] = len(f)
	}
	cells := make([][]string, len(rows))
	for ri, row := range rows {
		cells[ri] = make([]string, len(fields))
		m, _ := row.(map[string]any)
		for fi, f := range fields {
			cell := truncate(cellValue(m[f]), maxColWidth)
			cells[ri][fi] = cell
			if len(cell) > widths[fi] {
				widths[fi] = len(cell)
			}
		}
	}

	total := 2 * (len(fields) - 1)
	for fi, f := range fields {
		if fi > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprintf(w, "%-*s", widths[fi], f)
		total += widths[fi]
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", total))

	for _, row := range cells {
		for fi, cell := range row {
			if fi > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprintf(w, "%-*s", widths[fi], cell)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n%d results\n", len(rows))
}

// FormatJSON writes the result set as indented JSON to w.
func FormatJSON(rs ResultSet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rs)
}

// collectFields returns the union of row keys: named fields sorted first,
// internal underscore fields sorted after them.
func collectFields(rows []any) []string {
	seen := make(map[string]bool)
	var named, internal []string
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		for k := range m {
			if seen[k] {
				continue
			}
			seen[k] = true
			if strings.HasPrefix(k, "_") {
				internal = append(internal, k)
			} else {
				named = append(named, k)
			}
		}
	}
	sort.Strings(named)
	sort.Strings(internal)
	return append(named, internal...)
}

// cellValue renders one field value for table output.
func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

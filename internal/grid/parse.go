package grid

import (
	"fmt"
	"strings"

	"svw.info/patrol/internal/domain"
)

// Parse builds a Grid from text, one row per line. Rows are truncated to the
// shortest row's length. Trailing carriage returns and the newline ending the
// last row are dropped; any other empty line makes the grid malformed.
func Parse(text string) (*Grid, error) {
	rows := Lines(text)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", domain.ErrMalformedGrid)
	}
	width := len(rows[0])
	for _, r := range rows[1:] {
		width = min(width, len(r))
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", domain.ErrMalformedGrid)
	}
	cells := make([]byte, 0, width*len(rows))
	for _, r := range rows {
		cells = append(cells, r[:width]...)
	}
	return &Grid{width: width, height: len(rows), cells: cells}, nil
}

// Lines splits text into rows the way Parse sees them. Rows have no length
// limit.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	rows := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, r := range rows {
		rows[i] = strings.TrimSuffix(r, "\r")
	}
	return rows
}

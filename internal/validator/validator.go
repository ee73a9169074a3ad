package validator

import (
	"context"
	"fmt"

	"svw.info/patrol/internal/domain"
	"svw.info/patrol/internal/grid"
)

// TextValidator reports problems in raw map text that Parse tolerates
// silently: unknown glyphs, extra start markers and ragged rows. A missing
// start or an empty map is reported too.
type TextValidator struct{}

func New() *TextValidator { return &TextValidator{} }

func (v *TextValidator) Validate(ctx context.Context, text string) (bool, []domain.Issue, error) {
	rows := grid.Lines(text)
	issues := make([]domain.Issue, 0, 4)
	if len(rows) == 0 {
		issues = append(issues, domain.Issue{Message: "map has no rows"})
		return false, issues, nil
	}

	width := len(rows[0])
	for _, r := range rows[1:] {
		width = min(width, len(r))
	}
	if width == 0 {
		issues = append(issues, domain.Issue{Message: "map has an empty row"})
	}

	markers := 0
	for y, row := range rows {
		if err := ctx.Err(); err != nil {
			return false, nil, err
		}
		if len(row) > width {
			issues = append(issues, domain.Issue{
				Row:     y,
				Col:     width,
				Message: fmt.Sprintf("row is %d wide, truncated to %d", len(row), width),
			})
		}
		for x := 0; x < len(row); x++ {
			c := row[x]
			switch {
			case c == '.' || c == '#':
			case isMarker(c):
				if x >= width {
					issues = append(issues, domain.Issue{Row: y, Col: x, Message: "start marker outside truncated width"})
					continue
				}
				markers++
				if markers > 1 {
					issues = append(issues, domain.Issue{Row: y, Col: x, Message: "extra start marker ignored"})
				}
			default:
				issues = append(issues, domain.Issue{Row: y, Col: x, Message: fmt.Sprintf("unknown glyph %q treated as open", c)})
			}
		}
	}
	if markers == 0 {
		issues = append(issues, domain.Issue{Message: domain.ErrMissingStart.Error()})
	}
	return len(issues) == 0, issues, nil
}

func isMarker(c byte) bool {
	_, ok := domain.DirectionFromGlyph(c)
	return ok
}
